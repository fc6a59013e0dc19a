package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile loads a catalog from a file. The format is chosen by extension:
// ".hcl" files are evaluated as Atlas schemas, ".yaml", ".yml" and ".json"
// files are decoded with FromYAML.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c *Catalog
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		c, err = FromAtlasHCL(b)
	case ".yaml", ".yml", ".json":
		c, err = FromYAML(b)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}
