package load

import (
	"fmt"

	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
)

// FromAtlasHCL evaluates an Atlas HCL schema (PostgreSQL dialect) and
// converts it to a catalog. Nothing is executed against a database.
func FromAtlasHCL(b []byte) (*Catalog, error) {
	var realm schema.Realm
	if err := postgres.EvalHCLBytes(b, &realm, nil); err != nil {
		return nil, fmt.Errorf("evaluate hcl schema: %w", err)
	}
	c := &Catalog{}
	for _, rs := range realm.Schemas {
		s := &Schema{Name: rs.Name}
		for _, rt := range rs.Tables {
			t := &Table{Name: rt.Name, Schema: rs.Name}
			for _, rc := range rt.Columns {
				col, err := atlasColumn(rc)
				if err != nil {
					return nil, fmt.Errorf("table %q: %w", rt.Name, err)
				}
				t.Columns = append(t.Columns, col)
			}
			s.Tables = append(s.Tables, t)
		}
		c.Schemas = append(c.Schemas, s)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func atlasColumn(rc *schema.Column) (*Column, error) {
	col := &Column{Name: rc.Name}
	if rc.Type == nil || rc.Type.Type == nil {
		return nil, fmt.Errorf("column %q: missing type", rc.Name)
	}
	col.NotNull = !rc.Type.Null
	typ := rc.Type.Type
	if arr, ok := typ.(*postgres.ArrayType); ok {
		col.IsArray = true
		typ = arr.Type
	}
	name, err := postgres.FormatType(typ)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", rc.Name, err)
	}
	col.Type = name
	return col, nil
}
