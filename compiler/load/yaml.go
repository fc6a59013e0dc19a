package load

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a catalog from YAML (or JSON) of the form:
//
//	schemas:
//	  - name: public
//	    tables:
//	      - name: authors
//	        columns:
//	          - {name: id, type: text, not_null: true}
//	          - {name: bio, type: text}
func FromYAML(b []byte) (*Catalog, error) {
	c := &Catalog{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for _, s := range c.Schemas {
		for _, t := range s.Tables {
			t.Schema = s.Name
		}
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}
