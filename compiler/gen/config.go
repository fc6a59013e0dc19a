package gen

import (
	"errors"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/syssam/crudgen/compiler/load"
)

// DefaultIDColumn is the identity column of tables without a configuration entry.
const DefaultIDColumn = "id"

// Config holds the global codegen configuration. It can be decoded from
// YAML or JSON (the sqlc plugin options) with ParseConfig.
type Config struct {
	// Tables holds the per-table configuration entries.
	Tables []TableConfig `yaml:"tables,omitempty"`
	// Features enables artifact families. Nil means the default features.
	Features []Feature `yaml:"features,omitempty"`
	// Header is the block placed at the top of every generated SQL file.
	// Empty means the built-in header.
	Header string `yaml:"header,omitempty"`
	// ProtoPackage is the protobuf package of the generated proto files.
	ProtoPackage string `yaml:"proto_package,omitempty"`
	// ProtoGoPackage sets the go_package option of the generated proto files.
	ProtoGoPackage string `yaml:"proto_go_package,omitempty"`
	// GoPackage is the package name of the generated Go conversion file.
	GoPackage string `yaml:"go_package,omitempty"`
	// PbImport is the import path of the protoc generated Go package.
	// Empty means the unqualified identifier "pb" is used.
	PbImport string `yaml:"pb_import,omitempty"`
	// SkipValidation disables the check of identity and tenant columns
	// against the table columns.
	SkipValidation bool `yaml:"skip_validation,omitempty"`
	// Workers bounds the number of tables generated in parallel.
	Workers int `yaml:"workers,omitempty"`
	// LogLevel is read by the binaries to configure their logger.
	LogLevel string `yaml:"log_level,omitempty"`
	// Logger receives generation diagnostics. Nil discards them.
	Logger *slog.Logger `yaml:"-"`
}

// TableConfig holds the configuration of a single table.
type TableConfig struct {
	// Table is the raw table name this entry applies to.
	Table string `yaml:"table"`
	// IDColumns are the columns that address one row.
	IDColumns []string `yaml:"id_cols"`
	// TenantColumns are the columns that scope every statement to a tenant.
	TenantColumns []string `yaml:"tenants_cols"`
}

// DefaultTableConfig returns the configuration used for tables that have no
// entry: identity ["id"] and no tenant columns. Each call returns new slices.
func DefaultTableConfig(table string) TableConfig {
	return TableConfig{
		Table:         table,
		IDColumns:     []string{DefaultIDColumn},
		TenantColumns: []string{},
	}
}

// UnmarshalYAML decodes a table entry, defaulting id_cols and tenants_cols
// when they are absent.
func (tc *TableConfig) UnmarshalYAML(n *yaml.Node) error {
	type plain TableConfig
	v := plain(DefaultTableConfig(""))
	if err := n.Decode(&v); err != nil {
		return err
	}
	*tc = TableConfig(v)
	return nil
}

// PredicateColumns returns the identity columns followed by the tenant columns.
func (tc TableConfig) PredicateColumns() []string {
	cols := make([]string, 0, len(tc.IDColumns)+len(tc.TenantColumns))
	cols = append(cols, tc.IDColumns...)
	return append(cols, tc.TenantColumns...)
}

// IsPredicateColumn reports if the column is an identity or tenant column.
func (tc TableConfig) IsPredicateColumn(name string) bool {
	return slices.Contains(tc.IDColumns, name) || slices.Contains(tc.TenantColumns, name)
}

// Validate checks the entry against the table it configures. The identity
// must not be empty, and all identity and tenant columns must exist.
func (tc TableConfig) Validate(t *load.Table) error {
	var errs []error
	if len(tc.IDColumns) == 0 {
		errs = append(errs, NewValidationError(t.Name, "", "no identity columns configured"))
	}
	for _, c := range tc.IDColumns {
		if !t.HasColumn(c) {
			errs = append(errs, NewValidationError(t.Name, c, "identity column does not exist"))
		}
	}
	for _, c := range tc.TenantColumns {
		if !t.HasColumn(c) {
			errs = append(errs, NewValidationError(t.Name, c, "tenant column does not exist"))
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the configuration entry of the given table, if any.
// The first entry with an exactly matching name wins.
func (c *Config) Lookup(table string) (TableConfig, bool) {
	i := slices.IndexFunc(c.Tables, func(tc TableConfig) bool { return tc.Table == table })
	if i == -1 {
		return TableConfig{}, false
	}
	return c.Tables[i], true
}

// Resolve returns the effective configuration of the given table: its entry
// if one exists, or DefaultTableConfig otherwise.
func (c *Config) Resolve(table string) TableConfig {
	if tc, ok := c.Lookup(table); ok {
		return tc
	}
	return DefaultTableConfig(table)
}

// FeatureEnabled reports if the given feature name is enabled.
// It's exported to be used by the generators.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range AllFeatures {
		if name != f.Name {
			continue
		}
		if c.Features == nil {
			return f.Default, nil
		}
		return slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == name }), nil
	}
	return false, NewConfigError("Features", name, "unknown feature")
}

// logger returns the configured logger or a discarding one.
func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// ParseConfig decodes a configuration from YAML or JSON. Empty input
// yields the zero configuration.
func ParseConfig(b []byte) (*Config, error) {
	c := &Config{}
	if len(b) == 0 {
		return c, nil
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, NewConfigError("options", nil, err.Error())
	}
	if c.Features != nil && len(c.Features) == 0 {
		return nil, NewConfigError("features", nil, "no feature enabled; omit the option to enable the defaults")
	}
	return c, nil
}
