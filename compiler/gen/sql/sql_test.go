package sql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/load"
)

func authors() *load.Table {
	return &load.Table{
		Name: "authors",
		Columns: []*load.Column{
			{Name: "id", Type: "text", NotNull: true},
			{Name: "name", Type: "text", NotNull: true},
			{Name: "bio", Type: "text"},
			{Name: "created_at", Type: "timestamp", NotNull: true},
			{Name: "updated_at", Type: "timestamp", NotNull: true},
		},
	}
}

func books() *load.Table {
	return &load.Table{
		Name: "books",
		Columns: []*load.Column{
			{Name: "id", Type: "text", NotNull: true},
			{Name: "org_id", Type: "text", NotNull: true},
			{Name: "title", Type: "varchar", NotNull: true},
			{Name: "tags", Type: "text", NotNull: true, IsArray: true},
			{Name: "updated_at", Type: "timestamp", NotNull: true},
		},
	}
}

func tenantBooks() *gen.Table {
	return &gen.Table{
		Table: books(),
		Config: gen.TableConfig{
			Table:         "books",
			IDColumns:     []string{"id", "org_id"},
			TenantColumns: []string{"org_id"},
		},
	}
}

func defaultTable(lt *load.Table) *gen.Table {
	return &gen.Table{Table: lt, Config: gen.DefaultTableConfig(lt.Name)}
}

func TestAuthorsStatements(t *testing.T) {
	tbl := defaultTable(authors())

	tests := []struct {
		name string
		fn   func(*gen.Table) (string, bool)
		want string
	}{
		{
			name: "create",
			fn:   Create,
			want: "-- name: CreateAuthor :one\nINSERT INTO authors (id, name, bio) VALUES (@id, @name, @bio) RETURNING *;",
		},
		{
			name: "update",
			fn:   Update,
			want: "-- name: UpdateAuthor :one\nUPDATE authors SET\n" +
				"  name = COALESCE(sqlc.narg(name)::text, name),\n" +
				"  bio = COALESCE(sqlc.narg(bio)::text, bio),\n" +
				"  updated_at = now()\n" +
				"WHERE id = @id RETURNING *;",
		},
		{
			name: "get",
			fn:   Get,
			want: "-- name: GetAuthor :one\nSELECT * FROM authors WHERE id = @id;",
		},
		{
			name: "list",
			fn:   List,
			want: "-- name: ListAuthors :many\nSELECT * FROM authors LIMIT @take OFFSET @skip;",
		},
		{
			name: "count",
			fn:   Count,
			want: "-- name: CountListAuthors :one\nSELECT COUNT(*) FROM authors;",
		},
		{
			name: "delete",
			fn:   Delete,
			want: "-- name: DeleteAuthor :one\nDELETE FROM authors WHERE id = @id RETURNING *;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(tbl)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTenantStatements(t *testing.T) {
	tbl := tenantBooks()

	t.Run("row predicate", func(t *testing.T) {
		assert.Equal(t, "id = @id AND org_id = @org_id", RowPredicate(tbl))
	})

	t.Run("tenant predicate", func(t *testing.T) {
		assert.Equal(t, "org_id = @org_id", TenantPredicate(tbl))
	})

	t.Run("get", func(t *testing.T) {
		got, ok := Get(tbl)
		require.True(t, ok)
		assert.Equal(t, "-- name: GetBook :one\nSELECT * FROM books WHERE id = @id AND org_id = @org_id;", got)
	})

	t.Run("delete", func(t *testing.T) {
		got, ok := Delete(tbl)
		require.True(t, ok)
		assert.Equal(t, "-- name: DeleteBook :one\nDELETE FROM books WHERE id = @id AND org_id = @org_id RETURNING *;", got)
	})

	t.Run("list", func(t *testing.T) {
		got, ok := List(tbl)
		require.True(t, ok)
		assert.Equal(t, "-- name: ListBooks :many\nSELECT * FROM books WHERE org_id = @org_id LIMIT @take OFFSET @skip;", got)
	})

	t.Run("count", func(t *testing.T) {
		got, ok := Count(tbl)
		require.True(t, ok)
		assert.Equal(t, "-- name: CountListBooks :one\nSELECT COUNT(*) FROM books WHERE org_id = @org_id;", got)
	})

	t.Run("update skips predicate columns", func(t *testing.T) {
		got, ok := Update(tbl)
		require.True(t, ok)
		assert.NotContains(t, got, "org_id = COALESCE")
		assert.NotContains(t, got, "id = COALESCE(sqlc.narg(id)")
		assert.Contains(t, got, "title = COALESCE(sqlc.narg(title)::varchar, title)")
		assert.Contains(t, got, "WHERE id = @id AND org_id = @org_id RETURNING *;")
	})

	t.Run("array cast", func(t *testing.T) {
		got, _ := Update(tbl)
		assert.Contains(t, got, "tags = COALESCE(sqlc.narg(tags)::text[], tags)")
	})

	t.Run("create keeps tenant columns", func(t *testing.T) {
		got, ok := Create(tbl)
		require.True(t, ok)
		assert.Contains(t, got, "(id, org_id, title, tags)")
		assert.Contains(t, got, "(@id, @org_id, @title, @tags)")
	})
}

func TestListWhereVariants(t *testing.T) {
	tbl := defaultTable(books())
	got, _ := List(tbl)
	assert.NotContains(t, got, "WHERE")
	got, _ = Count(tbl)
	assert.NotContains(t, got, "WHERE")

	tbl.Config.TenantColumns = []string{"org_id"}
	got, _ = List(tbl)
	assert.Contains(t, got, "WHERE org_id = @org_id")
	got, _ = Count(tbl)
	assert.Contains(t, got, "WHERE org_id = @org_id")
}

func TestPredicate(t *testing.T) {
	assert.Equal(t, "", Predicate(nil))
	assert.Equal(t, "a = @a", Predicate([]string{"a"}))
	assert.Equal(t, "a = @a AND b = @b", Predicate([]string{"a", "b"}))
}

func TestNoOutput(t *testing.T) {
	t.Run("create without insertable columns", func(t *testing.T) {
		tbl := defaultTable(&load.Table{
			Name: "events",
			Columns: []*load.Column{
				{Name: "created_at", Type: "timestamp"},
				{Name: "updated_at", Type: "timestamp"},
			},
		})
		_, ok := Create(tbl)
		assert.False(t, ok)
	})

	t.Run("update without assignable columns", func(t *testing.T) {
		tbl := defaultTable(&load.Table{
			Name: "tokens",
			Columns: []*load.Column{
				{Name: "id", Type: "text"},
				{Name: "created_at", Type: "timestamp"},
			},
		})
		_, ok := Update(tbl)
		assert.False(t, ok)

		_, ok = Unit(tbl, DefaultHeader)
		assert.False(t, ok)

		files, err := New(nil).GenTable(tbl)
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestUnit(t *testing.T) {
	tbl := defaultTable(authors())

	t.Run("order and layout", func(t *testing.T) {
		unit, ok := Unit(tbl, "-- header\n")
		require.True(t, ok)
		require.True(t, strings.HasPrefix(unit, "-- header\n\n\n-- name: CreateAuthor :one\n"))
		require.True(t, strings.HasSuffix(unit, "RETURNING *;\n"))

		var order []string
		for _, line := range strings.Split(unit, "\n") {
			if name, ok := strings.CutPrefix(line, "-- name: "); ok {
				order = append(order, name)
			}
		}
		assert.Equal(t, []string{
			"CreateAuthor :one",
			"UpdateAuthor :one",
			"GetAuthor :one",
			"ListAuthors :many",
			"CountListAuthors :one",
			"DeleteAuthor :one",
		}, order)
		assert.Contains(t, unit, "RETURNING *;\n\n-- name: UpdateAuthor")
	})

	t.Run("empty header", func(t *testing.T) {
		unit, ok := Unit(tbl, "")
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(unit, "-- name: CreateAuthor :one\n"))
	})

	t.Run("deterministic", func(t *testing.T) {
		a, _ := Unit(tbl, DefaultHeader)
		b, _ := Unit(defaultTable(authors()), DefaultHeader)
		assert.Equal(t, a, b)
	})
}

func TestDefaultConfigEquivalence(t *testing.T) {
	cfg := &gen.Config{}
	implicit := &gen.Table{Table: authors(), Config: cfg.Resolve("authors")}
	explicit := &gen.Table{Table: authors(), Config: gen.TableConfig{
		Table:         "authors",
		IDColumns:     []string{"id"},
		TenantColumns: []string{},
	}}
	a, ok := Unit(implicit, DefaultHeader)
	require.True(t, ok)
	b, ok := Unit(explicit, DefaultHeader)
	require.True(t, ok)
	assert.Equal(t, a, b)
}

func TestGenerator(t *testing.T) {
	t.Run("default header", func(t *testing.T) {
		g := New(&gen.Config{})
		assert.Equal(t, "sql", g.Name())

		files, err := g.GenTable(defaultTable(authors()))
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "authors_crud.gen.sql", files[0].Name)
		assert.True(t, strings.HasPrefix(string(files[0].Content), "-- Code generated by crudgen. DO NOT EDIT."))
	})

	t.Run("custom header", func(t *testing.T) {
		g := New(gen.MustNewConfig(gen.WithHeader("-- custom")))
		files, err := g.GenTable(defaultTable(authors()))
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.True(t, strings.HasPrefix(string(files[0].Content), "-- custom\n\n\n"))
	})
}
