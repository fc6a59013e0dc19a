package gen

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTables(t *testing.T) {
	t.Run("appends entries", func(t *testing.T) {
		c := &Config{}
		err := WithTables(
			TableConfig{Table: "books", IDColumns: []string{"id"}},
			DefaultTableConfig("authors"),
		)(c)

		require.NoError(t, err)
		require.Len(t, c.Tables, 2)
		assert.Equal(t, "books", c.Tables[0].Table)
	})

	t.Run("empty table name", func(t *testing.T) {
		err := WithTables(TableConfig{})(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithHeader(t *testing.T) {
	c := &Config{Header: "existing"}
	require.NoError(t, WithHeader("-- custom")(c))
	assert.Equal(t, "-- custom", c.Header)
}

func TestWithFeatures(t *testing.T) {
	t.Run("deduplicates", func(t *testing.T) {
		c := &Config{}
		err := WithFeatures(FeatureSQL, FeatureProto, FeatureSQL)(c)
		require.NoError(t, err)
		assert.Equal(t, []Feature{FeatureSQL, FeatureProto}, c.Features)
	})

	t.Run("unknown feature", func(t *testing.T) {
		err := WithFeatures(Feature{Name: "graphql"})(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 4, false},
		{"negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithWorkers(tt.n)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, c.Workers)
		})
	}
}

func TestWithLogger(t *testing.T) {
	c := &Config{}
	require.Error(t, WithLogger(nil)(c))

	l := slog.New(slog.DiscardHandler)
	require.NoError(t, WithLogger(l)(c))
	assert.Same(t, l, c.Logger)
	assert.Same(t, l, c.logger())
	assert.NotNil(t, (&Config{}).logger())
}

func TestProtoOptions(t *testing.T) {
	c, err := NewConfig(
		WithProtoPackage("library.v1"),
		WithProtoGoPackage("example.com/library/pb;pb"),
		WithGoPackage("store"),
		WithPbImport("example.com/library/pb"),
		WithSkipValidation(),
	)
	require.NoError(t, err)
	assert.Equal(t, "library.v1", c.ProtoPackage)
	assert.Equal(t, "example.com/library/pb;pb", c.ProtoGoPackage)
	assert.Equal(t, "store", c.GoPackage)
	assert.Equal(t, "example.com/library/pb", c.PbImport)
	assert.True(t, c.SkipValidation)

	_, err = NewConfig(WithGoPackage(""))
	assert.True(t, IsConfigError(err))
}

func TestApply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithWorkers(-1), WithHeader("h"))
		require.Error(t, err)
		assert.Empty(t, c.Header)
	})

	t.Run("ApplyAll collects errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithWorkers(-1), WithHeader("h"), WithGoPackage(""))
		require.Error(t, err)
		assert.Equal(t, "h", c.Header)
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "GoPackage")
	})

	t.Run("MustNewConfig panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithWorkers(-1)) })
		assert.NotPanics(t, func() { MustNewConfig(WithWorkers(1)) })
	})
}
