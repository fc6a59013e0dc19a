package gen

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/crudgen/compiler/load"
)

// File is a generated artifact: a file name and its content.
type File struct {
	Name    string
	Content []byte
}

// Table is a catalog table together with its resolved configuration.
type Table struct {
	*load.Table
	// Config is the effective configuration of the table.
	Config TableConfig
}

// Singular returns the singular camel-case name of the table.
func (t *Table) Singular() string { return Singular(t.Name) }

// Plural returns the plural camel-case name of the table.
func (t *Table) Plural() string { return Plural(t.Name) }

// SnakeSingular returns the singular snake-case name of the table.
func (t *Table) SnakeSingular() string { return SnakeSingular(t.Name) }

// SnakePlural returns the plural snake-case name of the table.
func (t *Table) SnakePlural() string { return SnakePlural(t.Name) }

// Emitter generates one family of artifacts. An emitter implements
// TableGenerator, CatalogGenerator or both; the capabilities are detected
// when the emitter is registered.
type Emitter interface {
	// Name returns the emitter name (e.g., "sql", "proto").
	Name() string
}

// TableGenerator generates the files of a single table. It's called once
// per table, possibly in parallel with other tables. Returning no files
// means the table has no output for this emitter.
type TableGenerator interface {
	Emitter
	GenTable(t *Table) ([]*File, error)
}

// CatalogGenerator generates files spanning all tables.
// It's called once per generation run.
type CatalogGenerator interface {
	Emitter
	GenCatalog(tables []*Table) ([]*File, error)
}

// Generator runs the registered emitters over all tables of a catalog.
type Generator struct {
	cfg      *Config
	log      *slog.Logger
	tables   []*Table
	emitters []Emitter
	workers  int
}

// NewGenerator resolves the configuration of every catalog table and
// validates it, unless validation is disabled. All validation errors are
// reported together and no table is generated when any of them fails.
func NewGenerator(cfg *Config, c *load.Catalog) (*Generator, error) {
	if cfg == nil {
		return nil, NewConfigError("Config", nil, "missing configuration")
	}
	g := &Generator{
		cfg:     cfg,
		log:     cfg.logger(),
		workers: runtime.GOMAXPROCS(0),
	}
	if cfg.Workers > 0 {
		g.workers = cfg.Workers
	}
	var errs []error
	for _, lt := range c.Tables() {
		t := &Table{Table: lt, Config: cfg.Resolve(lt.Name)}
		if !cfg.SkipValidation {
			if err := t.Config.Validate(lt); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		g.tables = append(g.tables, t)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	g.checkNames()
	return g, nil
}

// checkNames logs ambiguities that are not resolved by the generator:
// tables sharing a name across schemas, and configuration entries that
// match no table.
func (g *Generator) checkNames() {
	seen := make(map[string]*Table, len(g.tables))
	for _, t := range g.tables {
		if prev, ok := seen[t.Name]; ok {
			g.log.Warn("table name is defined in more than one schema; generated names will collide",
				slog.String("table", t.Name),
				slog.String("first", prev.QualifiedName()),
				slog.String("second", t.QualifiedName()),
			)
			continue
		}
		seen[t.Name] = t
	}
	for _, tc := range g.cfg.Tables {
		if _, ok := seen[tc.Table]; !ok {
			g.log.Warn("configuration entry matches no table", slog.String("table", tc.Table))
		}
	}
}

// WithEmitters registers emitters. Their output is ordered by registration.
func (g *Generator) WithEmitters(emitters ...Emitter) *Generator {
	for _, e := range emitters {
		if e != nil {
			g.emitters = append(g.emitters, e)
		}
	}
	return g
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Tables returns the resolved tables, in catalog order.
func (g *Generator) Tables() []*Table {
	return g.tables
}

// Generate runs all emitters and returns the generated files. Tables are
// processed in parallel, but the output order is deterministic: for each
// emitter in registration order, its catalog files come first, followed by
// its table files in catalog order.
func (g *Generator) Generate(ctx context.Context) ([]*File, error) {
	if len(g.emitters) == 0 {
		return nil, NewConfigError("Emitters", nil, "no emitter registered")
	}
	var (
		catalogOut = make([][]*File, len(g.emitters))
		tableOut   = make([][][]*File, len(g.emitters))
	)
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for i, e := range g.emitters {
		if cg, ok := e.(CatalogGenerator); ok {
			errg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				files, err := cg.GenCatalog(g.tables)
				if err != nil {
					return NewGenerationError(e.Name(), "", "catalog", err)
				}
				catalogOut[i] = files
				return nil
			})
		}
		tg, ok := e.(TableGenerator)
		if !ok {
			continue
		}
		tableOut[i] = make([][]*File, len(g.tables))
		for j, t := range g.tables {
			errg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				files, err := tg.GenTable(t)
				if err != nil {
					return NewGenerationError(e.Name(), t.Name, "table", err)
				}
				tableOut[i][j] = files
				return nil
			})
		}
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	var out []*File
	for i, e := range g.emitters {
		out = append(out, catalogOut[i]...)
		for j, files := range tableOut[i] {
			if len(files) == 0 {
				g.log.Warn("no output generated for table",
					slog.String("emitter", e.Name()),
					slog.String("table", g.tables[j].Name),
				)
				continue
			}
			out = append(out, files...)
		}
	}
	g.log.Debug("generation finished",
		slog.Int("tables", len(g.tables)),
		slog.Int("files", len(out)),
	)
	return out, nil
}
