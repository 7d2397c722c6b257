package generate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jinzhu/inflection"
	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/classdiagramgen/internal/metrics"
	"github.com/cmmoran/classdiagramgen/internal/model"
	srcparser "github.com/cmmoran/classdiagramgen/internal/parser"
	"github.com/cmmoran/classdiagramgen/internal/relation"
	"github.com/cmmoran/classdiagramgen/internal/render"
	"github.com/cmmoran/classdiagramgen/pkg/parser"
)

// Stdout is where a diagram goes when OutFile is "-".
var Stdout io.Writer = os.Stdout

// Result is one generated diagram.
type Result struct {
	Sources   int
	Classes   model.Classes
	Relations []relation.Relation
	Counts    map[relation.Kind]int
	OutFile   string
}

// Build discovers and parses every source below opts.InDir and infers the
// relations between the classes found. Files are parsed in parallel; the
// classes keep file order.
func Build(ctx context.Context, opts *parser.Options) (*Result, error) {
	dialect, err := opts.Dialect()
	if err != nil {
		return nil, err
	}
	sources, err := parser.Discover(opts)
	if err != nil {
		return nil, err
	}

	parsed := make([]model.Classes, len(sources))
	p := srcparser.New(dialect)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			parsed[i] = p.Parse(src.Text)
			metrics.ObserveParse(dialect.Name, time.Since(start))
			slog.Debug("parsed source", "file", src.Rel, "classes", len(parsed[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse sources: %w", err)
	}

	classes := make(model.Classes, 0)
	for _, cs := range parsed {
		classes = append(classes, cs...)
	}
	set := relation.Infer(classes)

	return &Result{
		Sources:   len(sources),
		Classes:   classes,
		Relations: set.All(),
		Counts:    set.CountByKind(),
	}, nil
}

// Diagram assembles the render input for res under opts.
func Diagram(opts *parser.Options, res *Result) render.Diagram {
	return render.Diagram{
		Title:        opts.Title,
		Classes:      res.Classes,
		Relations:    res.Relations,
		AccessFilter: opts.AccessFilter(),
		Excluded:     opts.ExcludeClasses,
		GoPackage:    opts.GoPackage,
	}
}

// Write renders res in the configured format to w.
func Write(w io.Writer, opts *parser.Options, res *Result) error {
	f, err := opts.RenderFormat()
	if err != nil {
		return err
	}
	return render.Render(w, f, Diagram(opts, res))
}

// Run builds the diagram and writes it to opts.OutFile, or to Stdout when
// OutFile is "-". The file is only replaced once rendering succeeded.
func Run(ctx context.Context, opts *parser.Options) (*Result, error) {
	start := time.Now()
	res, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Write(&buf, opts, res); err != nil {
		return nil, err
	}

	if opts.OutFile == "-" {
		if _, err := buf.WriteTo(Stdout); err != nil {
			return nil, fmt.Errorf("write diagram: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(opts.OutFile), 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(opts.OutFile, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write diagram: %w", err)
		}
	}
	res.OutFile = opts.OutFile

	record(res, time.Since(start))
	slog.Info(fmt.Sprintf("wrote %s and %s from %s",
		countOf(len(res.Classes.Flatten()), "class"),
		countOf(len(res.Relations), "relation"),
		countOf(res.Sources, "file")),
		"file", res.OutFile, "format", opts.Format)
	return res, nil
}

func record(res *Result, took time.Duration) {
	metrics.GenerateDuration.Observe(took.Seconds())
	metrics.Classes.Set(float64(len(res.Classes.Flatten())))

	kinds := relation.Kinds()
	names := make([]string, 0, len(kinds))
	counts := make(map[string]int, len(res.Counts))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	for k, n := range res.Counts {
		counts[k.String()] = n
	}
	metrics.SetRelations(names, counts)
}

func countOf(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}
