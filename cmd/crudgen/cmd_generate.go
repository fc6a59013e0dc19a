package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/crudgen"
	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/internal/logging"
)

// debounce is the quiet period after a catalog change before regenerating.
const debounce = 200 * time.Millisecond

type generateFlags struct {
	catalog   string
	config    string
	out       string
	logLevel  string
	logFormat string
	watch     bool
}

func generateCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate all artifacts of a catalog file",
		Example: `  crudgen generate --catalog schema.hcl --out gen
  crudgen generate -s catalog.yaml -c crud.yaml -o gen --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.catalog == "" {
				return fmt.Errorf("--catalog flag is required")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if err := runGenerate(ctx, flags, cfg); err != nil {
				return err
			}
			if flags.watch {
				return watchCatalog(ctx, flags, cfg)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.catalog, "catalog", "s", "", "Catalog file (.hcl, .yaml, .yml, .json)")
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "Options file (YAML or JSON)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "text", "Log format (text, json)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Regenerate when the catalog file changes")
	return cmd
}

// loadConfig reads the options file, if any, and sets up the logger. The
// --log-level flag takes precedence over the log_level option.
func loadConfig(flags generateFlags) (*gen.Config, error) {
	cfg := &gen.Config{}
	if flags.config != "" {
		b, err := os.ReadFile(flags.config)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = gen.ParseConfig(b); err != nil {
			return nil, err
		}
	}
	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	cfg.Logger = logging.NewLogger(logging.Config{Level: level, Format: flags.logFormat})
	return cfg, nil
}

// runGenerate generates and writes all artifacts of the catalog file.
func runGenerate(ctx context.Context, flags generateFlags, cfg *gen.Config) error {
	start := time.Now()
	files, err := crudgen.GenerateFile(ctx, flags.catalog, cfg)
	if err != nil {
		return err
	}
	w := gen.NewWriter(flags.out)
	if cfg.Workers > 0 {
		w.WithWorkers(cfg.Workers)
	}
	if err := w.WriteAll(ctx, files); err != nil {
		return err
	}
	m := w.Metrics()
	cfg.Logger.Info("generated",
		slog.String("catalog", flags.catalog),
		slog.String("out", flags.out),
		slog.Int("files", m.FilesWritten),
		slog.Int64("bytes", m.TotalBytes),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// watchCatalog regenerates on every change of the catalog file until the
// context is canceled. Generation errors are logged and watching continues.
// The parent directory is watched, since editors often replace files
// instead of writing them in place.
func watchCatalog(ctx context.Context, flags generateFlags, cfg *gen.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(flags.catalog)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", flags.catalog, err)
	}
	cfg.Logger.Info("watching for changes", slog.String("catalog", flags.catalog))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if p, err := filepath.Abs(event.Name); err != nil || p != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cfg.Logger.Warn("watcher error", slog.Any("error", err))
		case <-timer.C:
			if err := runGenerate(ctx, flags, cfg); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				cfg.Logger.Error("generation failed", slog.Any("error", err))
			}
		}
	}
}
