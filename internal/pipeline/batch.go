package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one image in a batch.
type BatchItem struct {
	Source string  `json:"source"`
	Result *Result `json:"result,omitempty"`
	Err    error   `json:"-"`
	Error  string  `json:"error,omitempty"`
}

// RunBatch segments many images concurrently.
//
// Each image is written to its own subdirectory of opts.OutputDir named after
// the file without its extension. Inputs sharing a name get a numeric suffix
// in input order (chart, chart-2, ...). Runs share nothing but the image cache, so
// a failure in one image does not stop the others; every item carries its
// own error. workers <= 0 uses GOMAXPROCS. Items are returned in input order.
//
// Cancelling ctx stops images that have not started yet; they are reported
// with the context error.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string, opts Options, workers int) []BatchItem {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	items := make([]BatchItem, len(paths))
	dirs := outputNames(paths)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			itemOpts := opts
			itemOpts.OutputDir = filepath.Join(opts.outputDir(), dirs[i])

			res, err := p.Run(gctx, path, itemOpts)
			items[i] = BatchItem{Source: path, Result: res, Err: err}
			if err != nil {
				items[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	// Evict so a long batch does not keep every decoded image alive.
	for _, path := range paths {
		p.cache.Evict(path)
	}
	return items
}

// Failed counts the items that ended in an error.
func Failed(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputNames assigns each path a distinct output directory name.
func outputNames(paths []string) []string {
	used := make(map[string]bool, len(paths))
	names := make([]string, len(paths))
	for i, path := range paths {
		base := stem(path)
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}
