package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/leengari/rabbet/internal/domain/data"
	"github.com/leengari/rabbet/internal/domain/schema"
)

// StdinPath is the path that selects standard input
const StdinPath = "-"

var ErrStdinConsumed = errors.New("standard input can only be read once")

// CSVReader loads delimited text files with a header row.
// Column types are inferred from every non-empty cell; empty cells are NULL.
type CSVReader struct {
	Delimiter rune
	Stdin     io.Reader

	mu        sync.Mutex
	stdinRead bool
}

// NewCSVReader creates a reader for the given delimiter, reading "-" from stdin
func NewCSVReader(delimiter rune, stdin io.Reader) *CSVReader {
	return &CSVReader{Delimiter: delimiter, Stdin: stdin}
}

// ReadTable reads a file, or standard input for "-"
func (r *CSVReader) ReadTable(path string) (*schema.Table, error) {
	if path == StdinPath {
		src, err := r.claimStdin()
		if err != nil {
			return nil, err
		}
		return r.Decode(src, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return r.Decode(f, path)
}

func (r *CSVReader) claimStdin() (io.Reader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stdinRead {
		return nil, ErrStdinConsumed
	}
	r.stdinRead = true
	if r.Stdin == nil {
		return os.Stdin, nil
	}
	return r.Stdin, nil
}

// Decode parses CSV content into an unbound table
func (r *CSVReader) Decode(src io.Reader, path string) (*schema.Table, error) {
	reader := csv.NewReader(src)
	if r.Delimiter != 0 {
		reader.Comma = r.Delimiter
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row: input is empty")
	}

	headers := records[0]
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	body := records[1:]

	cols := make([]schema.Column, len(headers))
	for i, name := range headers {
		cols[i] = schema.Column{Name: name, Type: detectColumnType(body, i)}
	}

	rows := make([]data.Row, len(body))
	for n, record := range body {
		row := data.NewRow(len(cols))
		for i, col := range cols {
			row[i] = parseCell(record[i], col.Type)
		}
		rows[n] = row
	}

	table := schema.NewTable(schema.NewTableSchema(cols...), rows)
	table.Path = path

	slog.Debug("table loaded",
		slog.String("path", path),
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(cols)),
	)

	return table, nil
}

// detectColumnType picks the narrowest type every non-empty cell parses as:
// INT, then FLOAT, then BOOL, falling back to TEXT
func detectColumnType(records [][]string, col int) schema.ColumnType {
	isInt, isFloat, isBool := true, true, true
	seen := false

	for _, record := range records {
		v := record[col]
		if v == "" {
			continue
		}
		seen = true

		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat && !looksNumeric(v) {
			isFloat = false
		}
		if isBool {
			if _, ok := parseBool(v); !ok {
				isBool = false
			}
		}
		if !isInt && !isFloat && !isBool {
			break
		}
	}

	switch {
	case !seen:
		return schema.ColumnTypeText
	case isInt:
		return schema.ColumnTypeInt
	case isFloat:
		return schema.ColumnTypeFloat
	case isBool:
		return schema.ColumnTypeBool
	default:
		return schema.ColumnTypeText
	}
}

// looksNumeric accepts decimal floats but not words such as "inf" or "nan"
func looksNumeric(v string) bool {
	if !strings.ContainsAny(v, "0123456789") {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func parseBool(v string) (bool, bool) {
	switch {
	case strings.EqualFold(v, "true"):
		return true, true
	case strings.EqualFold(v, "false"):
		return false, true
	}
	return false, false
}

func parseCell(v string, t schema.ColumnType) any {
	if v == "" {
		return nil
	}
	switch t {
	case schema.ColumnTypeInt:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case schema.ColumnTypeFloat:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case schema.ColumnTypeBool:
		b, _ := parseBool(v)
		return b
	default:
		return v
	}
}
