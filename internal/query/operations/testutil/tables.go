package testutil

import (
	"github.com/leengari/rabbet/internal/domain/data"
	"github.com/leengari/rabbet/internal/domain/schema"
)

// NewTable builds a bound table from a label, join columns, column definitions and rows
func NewTable(label string, on []string, cols []schema.Column, rows ...data.Row) *schema.Table {
	t := schema.NewTable(schema.NewTableSchema(cols...), rows)
	t.Label = label
	t.On = on
	return t
}

// Int, Float, Bool and Text shorten column definitions in tests
func Int(name string) schema.Column   { return schema.Column{Name: name, Type: schema.ColumnTypeInt} }
func Float(name string) schema.Column { return schema.Column{Name: name, Type: schema.ColumnTypeFloat} }
func Bool(name string) schema.Column  { return schema.Column{Name: name, Type: schema.ColumnTypeBool} }
func Text(name string) schema.Column  { return schema.Column{Name: name, Type: schema.ColumnTypeText} }

// Row builds a row from literal values; plain ints become int64
func Row(values ...any) data.Row {
	r := data.NewRow(len(values))
	for i, v := range values {
		if n, ok := v.(int); ok {
			r[i] = int64(n)
			continue
		}
		r[i] = v
	}
	return r
}

// CreateUsersTable creates a users table keyed on id
func CreateUsersTable() *schema.Table {
	return NewTable("users", []string{"id"},
		[]schema.Column{Int("id"), Text("username"), Text("email")},
		Row(1, "alice", "alice@example.com"),
		Row(2, "bob", "bob@example.com"),
		Row(3, "charlie", "charlie@example.com"),
	)
}

// CreateOrdersTable creates an orders table keyed on user_id
func CreateOrdersTable() *schema.Table {
	return NewTable("orders", []string{"user_id"},
		[]schema.Column{Int("order_id"), Int("user_id"), Text("product"), Float("amount")},
		Row(1, 1, "Laptop", 999.99),
		Row(2, 1, "Mouse", 25.50),
		Row(3, 2, "Keyboard", 75.00),
		Row(4, 9, "Monitor", 180.00),
		// Note: user 3 (charlie) has no orders, order 4 has no user
	)
}

// CreateCatalog registers the users and orders tables
func CreateCatalog() *schema.Database {
	db := schema.NewDatabase("test")
	db.Tables["users"] = CreateUsersTable()
	db.Tables["orders"] = CreateOrdersTable()
	return db
}
