package crudgen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/load"
)

func fileNames(files []*gen.File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func fileContent(t *testing.T, files []*gen.File, name string) string {
	t.Helper()
	for _, f := range files {
		if f.Name == name {
			return string(f.Content)
		}
	}
	require.Failf(t, "file not generated", "%s", name)
	return ""
}

func booksConfig(opts ...gen.Option) *gen.Config {
	return gen.MustNewConfig(append([]gen.Option{
		gen.WithTables(gen.TableConfig{
			Table:         "books",
			IDColumns:     []string{"id", "org_id"},
			TenantColumns: []string{"org_id"},
		}),
	}, opts...)...)
}

func TestGenerateFile(t *testing.T) {
	files, err := GenerateFile(context.Background(), "testdata/library.yaml", booksConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"authors_crud.gen.sql",
		"books_crud.gen.sql",
		"proto.gen.proto",
		"proto.cnv.go",
		"authors_crud.proto",
		"books_crud.proto",
	}, fileNames(files))

	authors := fileContent(t, files, "authors_crud.gen.sql")
	assert.Contains(t, authors, "INSERT INTO authors (id, name, bio) VALUES (@id, @name, @bio) RETURNING *;")
	assert.Contains(t, authors, "DELETE FROM authors WHERE id = @id RETURNING *;")
	assert.Contains(t, authors, "SELECT * FROM authors LIMIT @take OFFSET @skip;")
	assert.Contains(t, authors, "SELECT COUNT(*) FROM authors;")

	books := fileContent(t, files, "books_crud.gen.sql")
	assert.Contains(t, books, "SELECT * FROM books WHERE id = @id AND org_id = @org_id;")
	assert.Contains(t, books, "SELECT * FROM books WHERE org_id = @org_id LIMIT @take OFFSET @skip;")
	assert.Contains(t, books, "tags = COALESCE(sqlc.narg(tags)::text[], tags)")

	msgs := fileContent(t, files, "proto.gen.proto")
	assert.Contains(t, msgs, "message Author {")
	assert.Contains(t, msgs, "message Book {")
	assert.Contains(t, msgs, "  repeated string tags = 4;")
	assert.Contains(t, msgs, "  optional int32 pages = 5;")

	assert.Contains(t, fileContent(t, files, "proto.cnv.go"), "func (t *Book) Pb() *pb.Book")
	assert.Contains(t, fileContent(t, files, "books_crud.proto"), "service BookService {")
}

func TestGenerateFeatures(t *testing.T) {
	c, err := load.LoadFile("testdata/library.yaml")
	require.NoError(t, err)

	files, err := Generate(context.Background(), c, booksConfig(gen.WithFeatures(gen.FeatureService, gen.FeatureSQL)))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"authors_crud.gen.sql",
		"books_crud.gen.sql",
		"authors_crud.proto",
		"books_crud.proto",
	}, fileNames(files))
}

func TestGenerateDeterministic(t *testing.T) {
	c, err := load.LoadFile("testdata/library.yaml")
	require.NoError(t, err)

	first, err := Generate(context.Background(), c, booksConfig(gen.WithWorkers(4)))
	require.NoError(t, err)
	for range 5 {
		next, err := Generate(context.Background(), c, booksConfig(gen.WithWorkers(4)))
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestGenerateValidation(t *testing.T) {
	c, err := load.LoadFile("testdata/library.yaml")
	require.NoError(t, err)

	cfg := gen.MustNewConfig(gen.WithTables(gen.TableConfig{
		Table:         "books",
		IDColumns:     []string{"id"},
		TenantColumns: []string{"tenant_id"},
	}))
	files, err := Generate(context.Background(), c, cfg)
	require.Error(t, err)
	assert.True(t, gen.IsValidationError(err))
	assert.Nil(t, files, "no table is generated from an invalid configuration")

	files, err = Generate(context.Background(), c, booksConfig(gen.WithSkipValidation()))
	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(context.Background(), &load.Catalog{}, nil)
	assert.True(t, gen.IsConfigError(err))

	_, err = Emitters(&gen.Config{Features: []gen.Feature{{Name: "graphql"}}})
	assert.True(t, gen.IsConfigError(err))

	_, err = Emitters(&gen.Config{Features: []gen.Feature{}})
	assert.True(t, gen.IsConfigError(err))

	_, err = GenerateFile(context.Background(), "testdata/missing.yaml", &gen.Config{})
	require.Error(t, err)
}

func TestEmitters(t *testing.T) {
	emitters, err := Emitters(&gen.Config{})
	require.NoError(t, err)
	var names []string
	for _, e := range emitters {
		names = append(names, e.Name())
	}
	assert.Equal(t, "sql,proto,convert,service", strings.Join(names, ","))
}
