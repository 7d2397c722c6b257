package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/cmmoran/classdiagramgen/internal/metrics"
	"github.com/cmmoran/classdiagramgen/internal/watcher"
	"github.com/cmmoran/classdiagramgen/pkg/action/generate"
	"github.com/cmmoran/classdiagramgen/pkg/parser"
)

// MinInterval is the least time between two regenerations.
var MinInterval = time.Second

// Run generates once, then regenerates whenever a source below opts.InDir
// changes, until ctx is done. Changes arriving while a regeneration is
// underway are coalesced into one more run. onRun, when set, receives every
// result.
func Run(ctx context.Context, opts *parser.Options, onRun func(*generate.Result, error)) error {
	dialect, err := opts.Dialect()
	if err != nil {
		return err
	}
	filter, err := parser.NewPathFilter(opts.Include, opts.Exclude)
	if err != nil {
		return err
	}

	regen := func() {
		res, err := generate.Run(ctx, opts)
		if err != nil {
			metrics.WatcherRunsTotal.WithLabelValues("error").Inc()
			slog.Error("regeneration failed", "error", err)
		} else {
			metrics.WatcherRunsTotal.WithLabelValues("ok").Inc()
		}
		if onRun != nil {
			onRun(res, err)
		}
	}
	regen()

	changed := make(chan struct{}, 1)
	w, err := watcher.New(watcher.Config{
		Debounce:    opts.Debounce,
		ExcludeDirs: opts.Exclude,
		Accept: func(path string) bool {
			rel, err := filepath.Rel(opts.InDir, path)
			if err != nil {
				return false
			}
			return dialect.Handles(path) && filter.Match(filepath.ToSlash(rel))
		},
	}, func(paths []string) {
		slog.Debug("sources changed", "files", paths)
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch([]string{opts.InDir}); err != nil {
		return err
	}
	slog.Info("watching sources", "dir", opts.InDir, "language", dialect.Name)

	limiter := rate.NewLimiter(rate.Every(MinInterval), 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			regen()
		}
	}
}
