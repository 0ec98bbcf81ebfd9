package output

import (
	"fmt"
	"strings"
)

// Format selects how result tables are written
type Format int

const (
	FormatAuto  Format = iota // table on a terminal, CSV otherwise
	FormatTable               // bordered text table
	FormatCSV                 // comma separated values
)

func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatCSV:
		return "csv"
	default:
		return "auto"
	}
}

// FormatNames lists the accepted --format values
func FormatNames() []string {
	return []string{"auto", "table", "csv"}
}

// ParseFormat converts a --format value into a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatAuto, fmt.Errorf("invalid format '%s' (expected one of: %s)", s, strings.Join(FormatNames(), ", "))
	}
}

// UseTable decides between table and CSV output.
// Auto picks the table when stdout is a terminal or table output is forced.
func (f Format) UseTable(isTerminal, force bool) bool {
	switch f {
	case FormatTable:
		return true
	case FormatCSV:
		return false
	default:
		return isTerminal || force
	}
}
