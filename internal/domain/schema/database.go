package schema

import (
	"fmt"
	"sort"
)

// Database is the catalog of tables registered for one invocation, keyed by label
type Database struct {
	Name   string
	Tables map[string]*Table
}

func NewDatabase(name string) *Database {
	return &Database{Name: name, Tables: make(map[string]*Table)}
}

// Register adds a table under its label
func (db *Database) Register(t *Table) error {
	if t.Label == "" {
		return fmt.Errorf("cannot register a table without a label")
	}
	if _, exists := db.Tables[t.Label]; exists {
		return fmt.Errorf("table '%s' is already registered", t.Label)
	}
	db.Tables[t.Label] = t
	return nil
}

// Labels returns the registered labels in sorted order
func (db *Database) Labels() []string {
	labels := make([]string, 0, len(db.Tables))
	for l := range db.Tables {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
