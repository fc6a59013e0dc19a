package gen

import (
	"errors"
	"log/slog"
	"slices"
)

// Option configures code generation.
type Option func(*Config) error

// WithTables adds per-table configuration entries.
// Entries for tables that are already configured are ignored, since the
// first matching entry wins.
func WithTables(tables ...TableConfig) Option {
	return func(c *Config) error {
		for _, tc := range tables {
			if tc.Table == "" {
				return NewConfigError("Tables", nil, "table name cannot be empty")
			}
			c.Tables = append(c.Tables, tc)
		}
		return nil
	}
}

// WithHeader sets the header block of the generated SQL files.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithFeatures enables specific features. Once any feature is set, only
// the listed features are generated.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if _, ok := LookupFeature(f.Name); !ok {
				return NewConfigError("Features", f.Name, "unknown feature")
			}
			if !slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == f.Name }) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithWorkers sets the number of tables generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger receiving generation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithProtoPackage sets the protobuf package of the generated proto files.
func WithProtoPackage(pkg string) Option {
	return func(c *Config) error {
		c.ProtoPackage = pkg
		return nil
	}
}

// WithProtoGoPackage sets the go_package option of the generated proto files.
func WithProtoGoPackage(pkg string) Option {
	return func(c *Config) error {
		c.ProtoGoPackage = pkg
		return nil
	}
}

// WithGoPackage sets the package name of the generated Go conversion file.
func WithGoPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("GoPackage", nil, "package cannot be empty")
		}
		c.GoPackage = pkg
		return nil
	}
}

// WithPbImport sets the import path of the protoc generated Go package.
func WithPbImport(path string) Option {
	return func(c *Config) error {
		c.PbImport = path
		return nil
	}
}

// WithSkipValidation disables the check of identity and tenant columns.
// Generated statements may then reference columns the table does not have.
func WithSkipValidation() Option {
	return func(c *Config) error {
		c.SkipValidation = true
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
