package schema

// ColumnType represents the inferred data type of a column
type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeBool  ColumnType = "BOOL"
	ColumnTypeText  ColumnType = "TEXT"
)

// IsNumeric reports whether values of this type are int64 or float64
func (ct ColumnType) IsNumeric() bool {
	return ct == ColumnTypeInt || ct == ColumnTypeFloat
}

// Column describes a single column of a table
type Column struct {
	Name string
	Type ColumnType
}

// TableSchema is the ordered list of columns of a table.
// Duplicate names are permitted; lookups by name resolve to the first match.
type TableSchema struct {
	Columns []Column
}

// NewTableSchema builds a schema from column definitions
func NewTableSchema(cols ...Column) *TableSchema {
	c := make([]Column, len(cols))
	copy(c, cols)
	return &TableSchema{Columns: c}
}

// Len returns the number of columns
func (s *TableSchema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Columns)
}

// Names returns the column names in order
func (s *TableSchema) Names() []string {
	names := make([]string, s.Len())
	for i := range names {
		names[i] = s.Columns[i].Name
	}
	return names
}

// Index returns the position of the first column with the given name, or -1
func (s *TableSchema) Index(name string) int {
	for i := 0; i < s.Len(); i++ {
		if s.Columns[i].Name == name {
			return i
		}
	}
	return -1
}

// Column returns the first column with the given name
func (s *TableSchema) Column(name string) (*Column, bool) {
	i := s.Index(name)
	if i < 0 {
		return nil, false
	}
	return &s.Columns[i], true
}
