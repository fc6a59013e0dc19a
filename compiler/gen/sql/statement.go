package sql

import (
	"strings"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/load"
)

// Create renders the insert statement. It reports false if the table has
// no insertable columns.
func Create(t *gen.Table) (string, bool) {
	cols := CreateColumns(t)
	if len(cols) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString(annotation("Create"+t.Singular(), One))
	b.WriteString("INSERT INTO ")
	b.WriteString(t.Name)
	b.WriteString(" (")
	b.WriteString(columnList(cols, ""))
	b.WriteString(") VALUES (")
	b.WriteString(columnList(cols, "@"))
	b.WriteString(") RETURNING *;")
	return b.String(), true
}

// Update renders the partial update statement. Every assignable column keeps
// its stored value unless a non-null argument is given, and updated_at is
// set to now(). It reports false if the table has no assignable columns.
func Update(t *gen.Table) (string, bool) {
	cols := UpdateColumns(t)
	if len(cols) == 0 {
		return "", false
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = assignment(c)
	}
	var b strings.Builder
	b.WriteString(annotation("Update"+t.Singular(), One))
	b.WriteString("UPDATE ")
	b.WriteString(t.Name)
	b.WriteString(" SET\n  ")
	b.WriteString(strings.Join(sets, ",\n  "))
	b.WriteString("\nWHERE ")
	b.WriteString(RowPredicate(t))
	b.WriteString(" RETURNING *;")
	return b.String(), true
}

// Get renders the select statement of one row.
func Get(t *gen.Table) (string, bool) {
	return annotation("Get"+t.Singular(), One) +
		"SELECT * FROM " + t.Name + " WHERE " + RowPredicate(t) + ";", true
}

// List renders the paginated select statement, scoped by the tenant columns.
func List(t *gen.Table) (string, bool) {
	return annotation("List"+t.Plural(), Many) +
		"SELECT * FROM " + t.Name + where(TenantPredicate(t)) +
		" LIMIT @" + TakeParam + " OFFSET @" + SkipParam + ";", true
}

// Count renders the count statement, scoped by the tenant columns.
func Count(t *gen.Table) (string, bool) {
	return annotation("CountList"+t.Plural(), One) +
		"SELECT COUNT(*) FROM " + t.Name + where(TenantPredicate(t)) + ";", true
}

// Delete renders the delete statement of one row.
func Delete(t *gen.Table) (string, bool) {
	return annotation("Delete"+t.Singular(), One) +
		"DELETE FROM " + t.Name + " WHERE " + RowPredicate(t) + " RETURNING *;", true
}

func where(pred string) string {
	if pred == "" {
		return ""
	}
	return " WHERE " + pred
}

// assignment renders the SET item of a column. The argument is cast to the
// declared column type, since sqlc cannot infer the type of a nullable
// argument inside COALESCE.
func assignment(c *load.Column) string {
	if c.Name == UpdatedAt {
		return UpdatedAt + " = now()"
	}
	typ := c.Type
	if c.IsArray {
		typ += "[]"
	}
	return c.Name + " = COALESCE(sqlc.narg(" + c.Name + ")::" + typ + ", " + c.Name + ")"
}
