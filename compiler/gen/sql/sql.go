// Package sql generates the CRUD query file of a table.
//
// Every table gets six sqlc-annotated statements, in this order:
//
//	-- name: CreateAuthor :one
//	-- name: UpdateAuthor :one
//	-- name: GetAuthor :one
//	-- name: ListAuthors :many
//	-- name: CountListAuthors :one
//	-- name: DeleteAuthor :one
//
// Get, update and delete are addressed by the identity columns followed by
// the tenant columns of the table configuration. List and count are scoped
// by the tenant columns only, and have no WHERE clause without them.
package sql

import (
	_ "embed"
	"strings"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/load"
)

// DefaultHeader is the block placed at the top of every query file.
//
//go:embed head.sql
var DefaultHeader string

// Columns maintained by the database.
const (
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// Pagination parameters of the list statement.
const (
	TakeParam = "take"
	SkipParam = "skip"
)

// Cardinality markers of the sqlc annotation.
const (
	One  = ":one"
	Many = ":many"
)

// FileSuffix is appended to the table name to form the query file name.
const FileSuffix = "_crud.gen.sql"

// Generator implements gen.TableGenerator for query files.
type Generator struct {
	header string
}

// New returns a query file generator for the given configuration.
func New(cfg *gen.Config) *Generator {
	g := &Generator{header: DefaultHeader}
	if cfg != nil && cfg.Header != "" {
		g.header = cfg.Header
	}
	return g
}

// Name implements gen.Emitter.
func (*Generator) Name() string { return gen.FeatureSQL.Name }

// GenTable implements gen.TableGenerator. A table without a complete query
// unit yields no file.
func (g *Generator) GenTable(t *gen.Table) ([]*gen.File, error) {
	unit, ok := Unit(t, g.header)
	if !ok {
		return nil, nil
	}
	return []*gen.File{{Name: FileName(t), Content: []byte(unit)}}, nil
}

// FileName returns the name of the query file of the table.
func FileName(t *gen.Table) string {
	return t.Name + FileSuffix
}

// Unit renders the full query file of a table: the header block followed
// by the six statements separated by blank lines. It reports false if any
// of the statements has no output.
func Unit(t *gen.Table, header string) (string, bool) {
	stmts := make([]string, 0, 6)
	for _, f := range []func(*gen.Table) (string, bool){Create, Update, Get, List, Count, Delete} {
		s, ok := f(t)
		if !ok {
			return "", false
		}
		stmts = append(stmts, s)
	}
	var b strings.Builder
	if header = strings.TrimRight(header, "\n"); header != "" {
		b.WriteString(header)
		b.WriteString("\n\n\n")
	}
	b.WriteString(strings.Join(stmts, "\n\n"))
	b.WriteString("\n")
	return b.String(), true
}

// CreateColumns returns the columns set on create: all columns except the
// ones maintained by the database.
func CreateColumns(t *gen.Table) []*load.Column {
	return filter(t.Columns, func(c *load.Column) bool {
		return c.Name != CreatedAt && c.Name != UpdatedAt
	})
}

// UpdateColumns returns the columns assigned on update: all columns except
// created_at and the identity and tenant columns.
func UpdateColumns(t *gen.Table) []*load.Column {
	return filter(t.Columns, func(c *load.Column) bool {
		return c.Name != CreatedAt && !t.Config.IsPredicateColumn(c.Name)
	})
}

// Predicate renders "a = @a AND b = @b". It returns an empty string for
// no columns.
func Predicate(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " = @" + c
	}
	return strings.Join(parts, " AND ")
}

// RowPredicate is the predicate addressing one row: the identity columns
// followed by the tenant columns.
func RowPredicate(t *gen.Table) string {
	return Predicate(t.Config.PredicateColumns())
}

// TenantPredicate is the predicate scoping list and count statements.
func TenantPredicate(t *gen.Table) string {
	return Predicate(t.Config.TenantColumns)
}

func annotation(name, cardinality string) string {
	return "-- name: " + name + " " + cardinality + "\n"
}

func filter(cols []*load.Column, keep func(*load.Column) bool) []*load.Column {
	out := make([]*load.Column, 0, len(cols))
	for _, c := range cols {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func columnList(cols []*load.Column, prefix string) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = prefix + c.Name
	}
	return strings.Join(names, ", ")
}
