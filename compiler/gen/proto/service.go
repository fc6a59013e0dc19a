package proto

import (
	"fmt"
	"strings"

	"github.com/syssam/crudgen/compiler/gen"
)

// Request and response fields of the service messages.
const (
	IDField     = "id"
	LimitField  = "limit"
	OffsetField = "offset"
)

type rpc struct {
	name     string
	request  []string
	response []string
}

// rpcs returns the five service methods of a table, in declaration order.
func rpcs(t *gen.Table) []rpc {
	var (
		sing   = t.Singular()
		entity = sing + " " + t.SnakeSingular() + " = 1"
		id     = "string " + IDField + " = 1"
	)
	return []rpc{
		{name: "Create" + sing, request: []string{entity}, response: []string{entity}},
		{name: "Get" + sing, request: []string{id}, response: []string{entity}},
		{name: "Update" + sing, request: []string{entity}, response: []string{entity}},
		{name: "Delete" + sing, request: []string{id}, response: []string{entity}},
		{
			name: "List" + t.Plural(),
			request: []string{
				"int32 " + LimitField + " = 1",
				"int32 " + OffsetField + " = 2",
			},
			response: []string{"repeated " + sing + " " + t.SnakePlural() + " = 1"},
		},
	}
}

// Service renders the CRUD service of a table followed by its request and
// response messages.
func Service(t *gen.Table) string {
	var (
		b       strings.Builder
		methods = rpcs(t)
	)
	fmt.Fprintf(&b, "service %sService {\n", t.Singular())
	for _, m := range methods {
		fmt.Fprintf(&b, "  rpc %[1]s(%[1]sRequest) returns (%[1]sResponse);\n", m.name)
	}
	b.WriteString("}")
	for _, m := range methods {
		writeMessage(&b, m.name+"Request", m.request)
		writeMessage(&b, m.name+"Response", m.response)
	}
	return b.String()
}

func writeMessage(b *strings.Builder, name string, fields []string) {
	fmt.Fprintf(b, "\n\nmessage %s {\n", name)
	for _, f := range fields {
		fmt.Fprintf(b, "  %s;\n", f)
	}
	b.WriteString("}")
}

// ServiceFile renders the service file of a table. It imports the message
// file for the entity message.
func ServiceFile(t *gen.Table, opts Options) string {
	return preamble(opts, []string{MessagesFile}) + Service(t) + "\n"
}

// ServiceFileName returns the name of the service file of a table.
func ServiceFileName(t *gen.Table) string {
	return t.Name + ServiceSuffix
}

// Services implements gen.TableGenerator for <table>_crud.proto.
type Services struct {
	opts Options
}

// NewServices returns the service file generator.
func NewServices(cfg *gen.Config) *Services {
	return &Services{opts: NewOptions(cfg)}
}

// Name implements gen.Emitter.
func (*Services) Name() string { return gen.FeatureService.Name }

// GenTable implements gen.TableGenerator.
func (s *Services) GenTable(t *gen.Table) ([]*gen.File, error) {
	return []*gen.File{{Name: ServiceFileName(t), Content: []byte(ServiceFile(t, s.opts))}}, nil
}
