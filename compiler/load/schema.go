// Package load builds the in-memory catalog the generator works on.
//
// A catalog can be loaded from a sqlc plugin request, a YAML description or
// an Atlas HCL schema. All loaders produce the same value types, which are
// read-only to the generator.
package load

import (
	"fmt"
	"slices"
)

// Catalog represents the full input: schemas, their tables and columns.
type Catalog struct {
	Name    string    `json:"name,omitempty" yaml:"name,omitempty"`
	Schemas []*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Schema groups tables under a database schema (namespace).
type Schema struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Tables []*Table `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Table represents a database table. The order of Columns is significant
// and is preserved exactly as loaded.
type Table struct {
	Name    string    `json:"name" yaml:"name"`
	Schema  string    `json:"schema,omitempty" yaml:"-"`
	Columns []*Column `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Column represents a table column.
type Column struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	NotNull bool   `json:"not_null,omitempty" yaml:"not_null,omitempty"`
	IsArray bool   `json:"is_array,omitempty" yaml:"is_array,omitempty"`
}

// Tables returns the tables of all schemas, flattened in catalog order.
// The schema grouping is dropped; Table.Schema is kept for diagnostics only.
func (c *Catalog) Tables() []*Table {
	if c == nil {
		return nil
	}
	var tables []*Table
	for _, s := range c.Schemas {
		tables = append(tables, s.Tables...)
	}
	return tables
}

// Column returns the column with the given name, if it exists.
func (t *Table) Column(name string) (*Column, bool) {
	i := slices.IndexFunc(t.Columns, func(c *Column) bool { return c.Name == name })
	if i == -1 {
		return nil, false
	}
	return t.Columns[i], true
}

// HasColumn reports if the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// QualifiedName returns the table name prefixed with its schema, if known.
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// check verifies the structural invariants of a loaded catalog: table and
// column names are non-empty, and column names are unique within a table.
func (c *Catalog) check() error {
	for _, s := range c.Schemas {
		for _, t := range s.Tables {
			if t.Name == "" {
				return fmt.Errorf("schema %q: table with empty name", s.Name)
			}
			seen := make(map[string]struct{}, len(t.Columns))
			for _, col := range t.Columns {
				if col.Name == "" {
					return fmt.Errorf("table %q: column with empty name", t.Name)
				}
				if _, ok := seen[col.Name]; ok {
					return fmt.Errorf("table %q: duplicate column %q", t.Name, col.Name)
				}
				seen[col.Name] = struct{}{}
			}
		}
	}
	return nil
}
