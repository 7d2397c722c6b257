package parser

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmmoran/classdiagramgen/internal/metrics"
)

// Source is one compilation unit read from disk.
type Source struct {
	Path string // as walked
	Rel  string // slash-separated, relative to InDir
	Text string
}

// Discover walks opts.InDir and reads every file the dialect handles and the
// include/exclude patterns accept, in lexical order. Excluded directories
// are not descended into. A file that cannot be read is logged and skipped.
func Discover(opts *Options) ([]Source, error) {
	dialect, err := opts.Dialect()
	if err != nil {
		return nil, err
	}
	filter, err := NewPathFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	sources := make([]Source, 0)
	err = filepath.WalkDir(opts.InDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == opts.InDir {
				return err
			}
			slog.Warn("skipping unreadable path", "file", path, "error", err)
			return nil
		}
		rel, relErr := filepath.Rel(opts.InDir, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != opts.InDir && filter.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !dialect.Handles(path) || !filter.Match(rel) {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			metrics.FilesFailed.Inc()
			slog.Warn("skipping source", "file", path, "error", fmt.Errorf("read source %s: %w", path, readErr))
			return nil
		}
		sources = append(sources, Source{Path: path, Rel: rel, Text: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", opts.InDir, err)
	}
	return sources, nil
}
