package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Run("writes files", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriter(filepath.Join(dir, "out")).WithWorkers(2)
		err := w.WriteAll(context.Background(), []*File{
			{Name: "authors_crud.gen.sql", Content: []byte("-- sql\n")},
			{Name: "proto/proto.gen.proto", Content: []byte("syntax = \"proto3\";\n")},
		})
		require.NoError(t, err)

		b, err := os.ReadFile(filepath.Join(dir, "out", "authors_crud.gen.sql"))
		require.NoError(t, err)
		assert.Equal(t, "-- sql\n", string(b))
		assert.FileExists(t, filepath.Join(dir, "out", "proto", "proto.gen.proto"))

		m := w.Metrics()
		assert.Equal(t, 2, m.FilesWritten)
		assert.Equal(t, int64(len("-- sql\n")+len("syntax = \"proto3\";\n")), m.TotalBytes)
	})

	t.Run("formats go files", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriter(dir)
		err := w.WriteAll(context.Background(), []*File{
			{Name: "proto.cnv.go", Content: []byte("package db\nfunc   f()  {}\n")},
		})
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir, "proto.cnv.go"))
		require.NoError(t, err)
		assert.Equal(t, "package db\n\nfunc f() {}\n", string(b))
	})

	t.Run("invalid go file", func(t *testing.T) {
		dir := t.TempDir()
		err := NewWriter(dir).WriteAll(context.Background(), []*File{
			{Name: "bad.go", Content: []byte("package db\nfunc {")},
		})
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
		assert.FileExists(t, filepath.Join(dir, "bad.go.error"))
		assert.NoFileExists(t, filepath.Join(dir, "bad.go"))
	})

	t.Run("rejects paths outside the output directory", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"", "../escape.sql", "/abs.sql"} {
			err := NewWriter(dir).WriteAll(context.Background(), []*File{{Name: name}})
			require.Error(t, err, name)
			assert.True(t, IsGenerationError(err), name)
		}
	})
}
