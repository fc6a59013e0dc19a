// Command crudgen generates CRUD queries and protobuf definitions from a
// catalog file, outside of sqlc.
//
// Usage:
//
//	crudgen generate --catalog schema.hcl --out gen        # Atlas HCL schema
//	crudgen generate --catalog catalog.yaml --config crud.yaml --out gen
//	crudgen generate --catalog schema.hcl --out gen --watch
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "crudgen",
		Short:         "Generate CRUD queries and protobuf definitions",
		Long:          `crudgen generates sqlc CRUD queries, protobuf messages, CRUD services and Go converters for every table of a database catalog.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(generateCmd())
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
