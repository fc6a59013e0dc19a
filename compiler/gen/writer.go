package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer writes generated files to an output directory with parallel
// execution. Go files are formatted with goimports before they are written.
type Writer struct {
	outDir  string
	workers int

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks written output.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a new writer for the given output directory.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// WriteAll writes all files in parallel.
func (w *Writer) WriteAll(ctx context.Context, files []*File) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}
	return eg.Wait()
}

// writeFile writes a single file.
func (w *Writer) writeFile(f *File) error {
	if f.Name == "" || filepath.IsAbs(f.Name) || strings.HasPrefix(filepath.Clean(f.Name), "..") {
		return NewGenerationError("write", f.Name, "invalid file name", nil)
	}
	fullPath := filepath.Join(w.outDir, f.Name)
	content := f.Content
	if strings.HasSuffix(f.Name, ".go") {
		formatted, err := imports.Process(fullPath, content, nil)
		if err != nil {
			// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
			debugPath := fullPath + ".error"
			_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
			_ = os.WriteFile(debugPath, content, 0o644)
			return NewGenerationError("write", f.Name, "format (unformatted written to "+debugPath+")", err)
		}
		content = formatted
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Name, err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(content))
	w.mu.Unlock()
	return nil
}
