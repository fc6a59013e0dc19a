// Package crudgen generates CRUD queries and protobuf definitions from a
// database catalog.
//
// For every table it emits a sqlc query file with the create, update, get,
// list, count and delete statements, a CRUD service definition, and adds
// the table's message and conversion method to the combined proto and Go
// files. The artifact families are selected with gen.WithFeatures:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTables(gen.TableConfig{
//	        Table:         "books",
//	        IDColumns:     []string{"id", "org_id"},
//	        TenantColumns: []string{"org_id"},
//	    }),
//	    gen.WithFeatures(gen.FeatureSQL, gen.FeatureProto),
//	)
//	if err != nil {
//	    return err
//	}
//	files, err := crudgen.Generate(ctx, catalog, cfg)
package crudgen

import (
	"context"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/gen/proto"
	"github.com/syssam/crudgen/compiler/gen/sql"
	"github.com/syssam/crudgen/compiler/load"
)

// Emitters returns the emitters of the enabled features, in output order:
// query files, the message file, the converter file and the service files.
func Emitters(cfg *gen.Config) ([]gen.Emitter, error) {
	all := []struct {
		feature gen.Feature
		emitter gen.Emitter
	}{
		{gen.FeatureSQL, sql.New(cfg)},
		{gen.FeatureProto, proto.NewMessages(cfg)},
		{gen.FeatureConvert, proto.NewConverters(cfg)},
		{gen.FeatureService, proto.NewServices(cfg)},
	}
	if cfg.Features != nil && len(cfg.Features) == 0 {
		return nil, gen.NewConfigError("Features", nil, "no feature enabled")
	}
	for _, f := range cfg.Features {
		if _, ok := gen.LookupFeature(f.Name); !ok {
			return nil, gen.NewConfigError("Features", f.Name, "unknown feature")
		}
	}
	var emitters []gen.Emitter
	for _, e := range all {
		enabled, err := cfg.FeatureEnabled(e.feature.Name)
		if err != nil {
			return nil, err
		}
		if enabled {
			emitters = append(emitters, e.emitter)
		}
	}
	return emitters, nil
}

// Generate runs the enabled emitters over all tables of the catalog.
func Generate(ctx context.Context, c *load.Catalog, cfg *gen.Config) ([]*gen.File, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "missing configuration")
	}
	emitters, err := Emitters(cfg)
	if err != nil {
		return nil, err
	}
	g, err := gen.NewGenerator(cfg, c)
	if err != nil {
		return nil, err
	}
	return g.WithEmitters(emitters...).Generate(ctx)
}

// GenerateFile loads a catalog file and generates its artifacts.
// See load.LoadFile for the supported formats.
func GenerateFile(ctx context.Context, path string, cfg *gen.Config) ([]*gen.File, error) {
	c, err := load.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Generate(ctx, c, cfg)
}
