// Package gen is the generation engine of crudgen.
//
// It turns a catalog of tables into SQL query files and protobuf
// definitions following fixed naming and typing conventions.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Catalog (compiler/load)
//	        ↓
//	   Config.Resolve (identity and tenant columns per table)
//	        ↓
//	   Generator (parallel over tables)
//	        ↓
//	   Emitters (compiler/gen/sql, compiler/gen/proto)
//	        ↓
//	   []*File
//
// # Table configuration
//
// Tables without an entry in Config.Tables use the identity ["id"] and no
// tenant columns. An entry is validated against the table's columns unless
// Config.SkipValidation is set.
//
// # Naming
//
// CamelCase, Singular, Plural, SnakeSingular and GoName derive the names
// used in generated code. Inflection always applies to the camel-cased form:
//
//	Singular("authors")  // Author
//	Plural("author")     // Authors
//	GoName("author_id")  // AuthorID
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: Configuration errors
//   - ValidationError: Table configuration not matching the table
//   - GenerationError: Code generation and write errors
//
// Example error handling:
//
//	g, err := gen.NewGenerator(cfg, catalog)
//	if gen.IsValidationError(err) {
//	    // identity or tenant columns missing from a table
//	}
package gen
