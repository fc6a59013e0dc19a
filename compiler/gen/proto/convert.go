package proto

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/schema/field"
)

// timestamppbPkg is the import path of the protobuf timestamp helpers.
const timestamppbPkg = "google.golang.org/protobuf/types/known/timestamppb"

// pbType returns the protoc generated type of a table.
func pbType(t *gen.Table, opts Options) *jen.Statement {
	if opts.PbImport == "" {
		return jen.Id("pb").Dot(t.Singular())
	}
	return jen.Qual(opts.PbImport, t.Singular())
}

// Converter returns the method converting a query row of the table to its
// protobuf message:
//
//	func (t *Author) Pb() *pb.Author {
//		return &pb.Author{
//			Id:        t.ID,
//			CreatedAt: timestamppb.New(t.CreatedAt),
//		}
//	}
func Converter(t *gen.Table, opts Options) jen.Code {
	return jen.Func().Params(jen.Id("t").Op("*").Id(t.Singular())).
		Id("Pb").Params().Op("*").Add(pbType(t, opts)).
		Block(
			jen.Return(jen.Op("&").Add(pbType(t, opts)).ValuesFunc(func(g *jen.Group) {
				for _, c := range t.Columns {
					v := jen.Id("t").Dot(gen.GoName(c.Name))
					if field.IsTimestamp(c.Type) {
						v = jen.Qual(timestamppbPkg, "New").Call(v)
					}
					g.Line().Id(gen.CamelCase(c.Name)).Op(":").Add(v)
				}
				g.Line()
			})),
		)
}

// ConverterString renders the converter of a table as Go source.
func ConverterString(t *gen.Table, opts Options) string {
	return fmt.Sprintf("%#v", Converter(t, opts))
}

// NewConvertersFile returns the combined converter file of all tables.
func NewConvertersFile(tables []*gen.Table, opts Options) *jen.File {
	f := jen.NewFile(opts.ConvertPackage)
	f.HeaderComment("Code generated by crudgen. DO NOT EDIT.")
	if opts.PbImport != "" {
		f.ImportAlias(opts.PbImport, "pb")
	}
	for _, t := range tables {
		f.Add(Converter(t, opts))
		f.Line()
	}
	return f
}

// Converters implements gen.CatalogGenerator for proto.cnv.go.
type Converters struct {
	opts Options
}

// NewConverters returns the converter file generator.
func NewConverters(cfg *gen.Config) *Converters {
	return &Converters{opts: NewOptions(cfg)}
}

// Name implements gen.Emitter.
func (*Converters) Name() string { return gen.FeatureConvert.Name }

// GenCatalog implements gen.CatalogGenerator. A catalog without tables
// yields no file.
func (c *Converters) GenCatalog(tables []*gen.Table) ([]*gen.File, error) {
	if len(tables) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := NewConvertersFile(tables, c.opts).Render(&buf); err != nil {
		return nil, err
	}
	return []*gen.File{{Name: ConvertersFile, Content: buf.Bytes()}}, nil
}
