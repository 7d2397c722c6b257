package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cmmoran/classdiagramgen/internal/model"
	srcparser "github.com/cmmoran/classdiagramgen/internal/parser"
	"github.com/cmmoran/classdiagramgen/internal/render"
)

// ErrInvalidOptions wraps every struct-tag validation failure.
var ErrInvalidOptions = errors.New("invalid options")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Options control source discovery, parsing and rendering.
//
// InDir          – directory walked for sources
// OutFile        – output file; "-" writes to stdout
// Language       – source dialect (csharp, java)
// AccessLevels   – member access levels written live; others are commented out
// ExcludeClasses – class names written commented out
// Include        – glob patterns a source path must match (any)
// Exclude        – glob patterns that drop a source path or directory
// Format         – puml, yaml, json or go
// Title          – diagram title
// Workers        – parallel parse limit, 0 means one per CPU
// GoPackage      – package name of generated Go stubs
// Debounce       – quiet period before watch mode regenerates
type Options struct {
	InDir          string        `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty" validate:"required"`
	OutFile        string        `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty" validate:"required"`
	Language       string        `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty" mapstructure:"language,omitempty" validate:"required"`
	AccessLevels   []string      `json:"access_levels,omitempty" yaml:"access_levels,omitempty" toml:"access_levels,omitempty" mapstructure:"access_levels,omitempty" validate:"dive,oneof=public protected internal package private"`
	ExcludeClasses []string      `json:"exclude_classes,omitempty" yaml:"exclude_classes,omitempty" toml:"exclude_classes,omitempty" mapstructure:"exclude_classes,omitempty"`
	Include        []string      `json:"include,omitempty" yaml:"include,omitempty" toml:"include,omitempty" mapstructure:"include,omitempty"`
	Exclude        []string      `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty" mapstructure:"exclude,omitempty"`
	Format         string        `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty" mapstructure:"format,omitempty" validate:"omitempty,oneof=puml plantuml uml yaml yml json go"`
	Title          string        `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty" mapstructure:"title,omitempty" validate:"required"`
	Workers        int           `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers,omitempty" mapstructure:"workers,omitempty" validate:"gte=0"`
	GoPackage      string        `json:"go_package,omitempty" yaml:"go_package,omitempty" toml:"go_package,omitempty" mapstructure:"go_package,omitempty" validate:"omitempty,alphanum"`
	Debounce       time.Duration `json:"debounce,omitempty" yaml:"debounce,omitempty" toml:"debounce,omitempty" mapstructure:"debounce,omitempty" validate:"gte=0"`
}

func NewOptions() *Options {
	return &Options{
		InDir:    ".",
		Language: "csharp",
		Format:   string(render.FormatPlantUML),
		Title:    "class-diagram",
		Exclude:  []string{"bin", "obj", ".*"},
		Debounce: 300 * time.Millisecond,
	}
}

// Normalize splits list values given as one separated string, lowercases
// the enumerated values and fills in defaults. It is safe to call twice.
func (o *Options) Normalize() {
	if len(o.InDir) == 0 {
		o.InDir = "."
	}
	if abs, err := filepath.Abs(o.InDir); err == nil {
		o.InDir = abs
	}

	o.Language = strings.ToLower(strings.TrimSpace(o.Language))
	o.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(o.Format), "."))
	if o.Format == "" {
		o.Format = string(render.FormatPlantUML)
	}

	o.AccessLevels = SplitList(o.AccessLevels...)
	for i, a := range o.AccessLevels {
		o.AccessLevels[i] = strings.ToLower(a)
	}
	o.ExcludeClasses = SplitList(o.ExcludeClasses...)

	o.Title = strings.TrimSpace(o.Title)
	if o.Title == "" {
		o.Title = "class-diagram"
	}
	if len(o.OutFile) == 0 {
		ext := ".puml"
		if f, err := render.ParseFormat(o.Format); err == nil {
			ext = f.Extension()
		}
		o.OutFile = o.Title + ext
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
}

// Validate checks the struct tags and that Language and Format name known
// values.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(msgs, "; "))
	}
	if _, err := o.Dialect(); err != nil {
		return err
	}
	if _, err := o.RenderFormat(); err != nil {
		return err
	}
	return nil
}

func (o *Options) Dialect() (srcparser.Dialect, error) {
	return srcparser.LookupDialect(o.Language)
}

func (o *Options) RenderFormat() (render.Format, error) {
	return render.ParseFormat(o.Format)
}

// AccessFilter folds AccessLevels into a modifier mask.
func (o *Options) AccessFilter() model.Modifier {
	return ParseAccessLevels(o.AccessLevels...)
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option     { return func(o *Options) { o.InDir = d } }
func WithOutFile(f string) Option   { return func(o *Options) { o.OutFile = f } }
func WithLanguage(l string) Option  { return func(o *Options) { o.Language = l } }
func WithFormat(f string) Option    { return func(o *Options) { o.Format = f } }
func WithTitle(t string) Option     { return func(o *Options) { o.Title = t } }
func WithWorkers(n int) Option      { return func(o *Options) { o.Workers = n } }
func WithGoPackage(p string) Option { return func(o *Options) { o.GoPackage = p } }
func WithAccessLevels(levels ...string) Option {
	return func(o *Options) { o.AccessLevels = append(o.AccessLevels, levels...) }
}
func WithExcludeClasses(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeClasses = append(o.ExcludeClasses, strings.TrimSpace(n))
		}
	}
}
func WithInclude(patterns ...string) Option {
	return func(o *Options) { o.Include = append(o.Include, patterns...) }
}
func WithExclude(patterns ...string) Option {
	return func(o *Options) { o.Exclude = append(o.Exclude, patterns...) }
}

// Apply runs opts against o and returns it.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}
