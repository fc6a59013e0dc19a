// Command sqlc-gen-crud is a sqlc process plugin generating CRUD queries and
// protobuf definitions for every table of the catalog.
//
// Register it in sqlc.yaml:
//
//	plugins:
//	  - name: crud
//	    process:
//	      cmd: sqlc-gen-crud
//	sql:
//	  - schema: schema.sql
//	    queries: query.sql
//	    engine: postgresql
//	    codegen:
//	      - plugin: crud
//	        out: gen
//	        options:
//	          tables:
//	            - table: books
//	              id_cols: [id, org_id]
//	              tenants_cols: [org_id]
package main

import (
	"context"
	"log/slog"

	"github.com/sqlc-dev/plugin-sdk-go/codegen"
	"github.com/sqlc-dev/plugin-sdk-go/plugin"

	"github.com/syssam/crudgen"
	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/load"
	"github.com/syssam/crudgen/internal/logging"
)

func main() {
	codegen.Run(generate)
}

// generate handles a single plugin request.
func generate(ctx context.Context, req *plugin.GenerateRequest) (*plugin.GenerateResponse, error) {
	cfg, err := gen.ParseConfig(req.GetPluginOptions())
	if err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewLogger(logging.Config{Level: cfg.LogLevel})
	}
	c, err := load.FromPlugin(req.GetCatalog())
	if err != nil {
		return nil, err
	}
	files, err := crudgen.Generate(ctx, c, cfg)
	if err != nil {
		return nil, err
	}
	resp := &plugin.GenerateResponse{}
	for _, f := range files {
		resp.Files = append(resp.Files, &plugin.File{Name: f.Name, Contents: f.Content})
	}
	cfg.Logger.Debug("sqlc plugin request handled",
		slog.String("sqlc_version", req.GetSqlcVersion()),
		slog.Int("files", len(resp.Files)),
	)
	return resp, nil
}
