package load

import (
	"github.com/sqlc-dev/plugin-sdk-go/plugin"
)

// FromPlugin converts the catalog of a sqlc plugin request. Column types are
// taken from the unqualified type identifier name, the same way sqlc reports
// them to plugins (e.g. "text", "pg_catalog.timestamp").
func FromPlugin(pc *plugin.Catalog) (*Catalog, error) {
	c := &Catalog{Name: pc.GetName()}
	for _, ps := range pc.GetSchemas() {
		s := &Schema{Name: ps.GetName()}
		for _, pt := range ps.GetTables() {
			t := &Table{
				Name:   pt.GetRel().GetName(),
				Schema: ps.GetName(),
			}
			for _, pcol := range pt.GetColumns() {
				t.Columns = append(t.Columns, &Column{
					Name:    pcol.GetName(),
					Type:    pcol.GetType().GetName(),
					NotNull: pcol.GetNotNull(),
					IsArray: pcol.GetIsArray(),
				})
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
