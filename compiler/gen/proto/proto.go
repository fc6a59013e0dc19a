// Package proto generates protobuf definitions and Go converters for the
// tables of a catalog.
//
// Three artifact families are produced:
//
//	proto.gen.proto      one message per table (Messages)
//	proto.cnv.go         one Pb() conversion method per table (Converters)
//	<table>_crud.proto   one CRUD service per table (Services)
package proto

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/load"
	"github.com/syssam/crudgen/schema/field"
)

// File names of the generated artifacts.
const (
	MessagesFile   = "proto.gen.proto"
	ConvertersFile = "proto.cnv.go"
	ServiceSuffix  = "_crud.proto"
)

// TimestampImport is the import path of google.protobuf.Timestamp.
const TimestampImport = "google/protobuf/timestamp.proto"

// Options holds the settings shared by all proto artifacts.
type Options struct {
	// Package is the protobuf package. Empty means no package statement.
	Package string
	// GoPackage is the go_package option. Empty means no option.
	GoPackage string
	// ConvertPackage is the package name of the converter file.
	ConvertPackage string
	// PbImport is the import path of the protoc generated Go package.
	PbImport string
}

// DefaultConvertPackage is the package name of the converter file when none
// is configured. It matches the default sqlc output package.
const DefaultConvertPackage = "db"

// NewOptions extracts the proto options of a configuration.
func NewOptions(cfg *gen.Config) Options {
	opts := Options{ConvertPackage: DefaultConvertPackage}
	if cfg == nil {
		return opts
	}
	opts.Package = cfg.ProtoPackage
	opts.GoPackage = cfg.ProtoGoPackage
	opts.PbImport = cfg.PbImport
	if cfg.GoPackage != "" {
		opts.ConvertPackage = cfg.GoPackage
	}
	return opts
}

// Message renders the protobuf message of a table. Fields are numbered by
// their 1-based position in the column order.
func Message(t *gen.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "message %s {\n", t.Singular())
	for i, c := range t.Columns {
		fmt.Fprintf(&b, "  %s = %d;\n", fieldDecl(c), i+1)
	}
	b.WriteString("}")
	return b.String()
}

func fieldDecl(c *load.Column) string {
	return field.ProtoFieldType(c.Type, c.IsArray, c.NotNull) + " " + c.Name
}

// File renders the combined message file of all tables.
func File(tables []*gen.Table, opts Options) string {
	var imports []string
	if slices.ContainsFunc(tables, hasTimestamp) {
		imports = append(imports, TimestampImport)
	}
	msgs := make([]string, len(tables))
	for i, t := range tables {
		msgs[i] = Message(t)
	}
	return preamble(opts, imports) + strings.Join(msgs, "\n\n") + "\n"
}

func hasTimestamp(t *gen.Table) bool {
	return slices.ContainsFunc(t.Columns, func(c *load.Column) bool {
		return field.IsTimestamp(c.Type)
	})
}

// preamble renders the syntax, package, option and import statements,
// followed by a blank line.
func preamble(opts Options, imports []string) string {
	var b strings.Builder
	b.WriteString("syntax = \"proto3\";\n\n")
	if opts.Package != "" {
		fmt.Fprintf(&b, "package %s;\n\n", opts.Package)
	}
	if opts.GoPackage != "" {
		fmt.Fprintf(&b, "option go_package = %q;\n\n", opts.GoPackage)
	}
	for _, imp := range imports {
		fmt.Fprintf(&b, "import %q;\n", imp)
	}
	if len(imports) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// Messages implements gen.CatalogGenerator for proto.gen.proto.
type Messages struct {
	opts Options
}

// NewMessages returns the message file generator.
func NewMessages(cfg *gen.Config) *Messages {
	return &Messages{opts: NewOptions(cfg)}
}

// Name implements gen.Emitter.
func (*Messages) Name() string { return gen.FeatureProto.Name }

// GenCatalog implements gen.CatalogGenerator. A catalog without tables
// yields no file.
func (m *Messages) GenCatalog(tables []*gen.Table) ([]*gen.File, error) {
	if len(tables) == 0 {
		return nil, nil
	}
	return []*gen.File{{Name: MessagesFile, Content: []byte(File(tables, m.opts))}}, nil
}
