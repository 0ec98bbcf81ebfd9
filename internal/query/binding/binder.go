package binding

import (
	"log/slog"

	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/domain/schema"
)

// TableReader decodes a table source ("-" meaning stdin) into an unbound table
type TableReader interface {
	ReadTable(path string) (*schema.Table, error)
}

// Bind resolves every table's join columns and then loads the tables in order.
// Join columns are resolved for all tables before any source is read, so a bad --on
// never costs a read. A load failure aborts the bind; no partial result is returned.
func Bind(paths, labels []string, keys *KeyMap, reader TableReader) ([]*schema.Table, error) {
	if len(paths) != len(labels) {
		return nil, domainerrors.NewValidation("number of table names must match number of tables")
	}
	if keys == nil {
		keys = ParseOnSpecs(nil)
	}

	// Phase 1: resolve join columns
	ons := make([][]string, len(labels))
	for i, label := range labels {
		ons[i] = keys.Resolve(label)
		if len(ons[i]) == 0 {
			return nil, domainerrors.NewValidation("no columns specified for join on table '%s'", label)
		}
	}

	// Phase 2: load
	tables, err := Load(paths, labels, reader)
	if err != nil {
		return nil, err
	}
	for i, t := range tables {
		t.On = ons[i]
		slog.Debug("table bound",
			slog.String("label", t.Label),
			slog.Any("on", t.On),
		)
	}

	return tables, nil
}

// Load reads every source in order and labels it. A read failure aborts the load
// with a LoadError naming the label and path.
func Load(paths, labels []string, reader TableReader) ([]*schema.Table, error) {
	if len(paths) != len(labels) {
		return nil, domainerrors.NewValidation("number of table names must match number of tables")
	}

	tables := make([]*schema.Table, 0, len(paths))
	for i, path := range paths {
		t, err := reader.ReadTable(path)
		if err != nil {
			return nil, &domainerrors.LoadError{Label: labels[i], Path: path, Err: err}
		}
		t.Label = labels[i]
		t.Path = path
		t.On = nil
		tables = append(tables, t)

		slog.Debug("table loaded",
			slog.String("label", t.Label),
			slog.String("path", path),
			slog.Int("rows", t.Height()),
		)
	}

	return tables, nil
}
