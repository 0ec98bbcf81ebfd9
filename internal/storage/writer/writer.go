package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leengari/rabbet/internal/domain/schema"
)

// WriteCSV writes the header and every row of a table.
// NULL is an empty field; integral floats keep a ".0" suffix so they read back as FLOAT.
func WriteCSV(w io.Writer, t *schema.Table, delimiter rune) error {
	if t == nil {
		return fmt.Errorf("cannot write nil table")
	}

	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}

	if err := cw.Write(t.Schema.Names()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, t.Width())
	for i, row := range t.Rows {
		for j := range record {
			if j < len(row) {
				record[j] = FormatValue(row[j])
			} else {
				record[j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatValue renders a cell value as CSV text
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// SaveCSV writes a table to a file using temp + atomic rename
func SaveCSV(path string, t *schema.Table, delimiter rune) error {
	if t == nil || path == "" {
		return fmt.Errorf("cannot save table: nil or missing path")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if err := WriteCSV(tmp, t, delimiter); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	// Atomic replace
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}

	slog.Info("Table saved successfully",
		slog.String("table", t.Label),
		slog.String("path", path),
		slog.Int("row_count", len(t.Rows)),
	)

	return nil
}
