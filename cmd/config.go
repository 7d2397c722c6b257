package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/classdiagramgen/internal/render"
	"github.com/cmmoran/classdiagramgen/pkg/parser"
)

// addOptionFlags registers the flags shared by generate, watch and snapshot
// record. Defaults come from defaults.
func addOptionFlags(c *cobra.Command, defaults *parser.Options) {
	fs := c.Flags()
	fs.StringP("input-directory", "i", defaults.InDir, "directory to scan")
	fs.StringP("output-file", "o", defaults.OutFile, `output file, "-" for stdout (default: <title>.<format>)`)
	fs.StringP("language", "L", defaults.Language, "source language (csharp, java)")
	fs.StringP("format", "f", defaults.Format, "output format ("+strings.Join(formats(), ", ")+")")
	fs.StringP("title", "t", defaults.Title, "diagram title")
	fs.StringSliceP("access", "a", defaults.AccessLevels, "access levels written live, others are commented out (default: all)")
	fs.StringSliceP("exclude-classes", "x", defaults.ExcludeClasses, "class names written commented out")
	fs.StringSlice("include", defaults.Include, "glob patterns a source path must match")
	fs.StringSlice("exclude", defaults.Exclude, "glob patterns for source paths and directories to skip")
	fs.IntP("workers", "w", defaults.Workers, "parallel parse limit, 0 for one per CPU")
	fs.String("go-package", defaults.GoPackage, "package name of generated Go stubs")
	fs.Duration("debounce", defaults.Debounce, "quiet period before watch mode regenerates")
}

var optionKeys = map[string]string{
	"input-directory": "in_dir",
	"output-file":     "out_file",
	"language":        "language",
	"format":          "format",
	"title":           "title",
	"access":          "access_levels",
	"exclude-classes": "exclude_classes",
	"include":         "include",
	"exclude":         "exclude",
	"workers":         "workers",
	"go-package":      "go_package",
	"debounce":        "debounce",
}

// bindOptions binds the option flags of c under section in v, so config
// files and CLASSDIAGRAM_<SECTION>_<KEY> variables can set them.
func bindOptions(v *viper.Viper, c *cobra.Command, section string) error {
	for flag, key := range optionKeys {
		f := c.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(section+"."+key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// commandConfig mirrors the config file sections holding command options.
type commandConfig struct {
	Generate *parser.Options `mapstructure:"generate"`
	Watch    *parser.Options `mapstructure:"watch"`
	Snapshot *parser.Options `mapstructure:"snapshot"`
}

// loadOptions unmarshals section over fresh options, then normalizes and
// validates them. The whole tree is unmarshalled because nested keys bound
// only to flags are invisible to UnmarshalKey.
func loadOptions(v *viper.Viper, section string) (*parser.Options, error) {
	cfg := commandConfig{
		Generate: parser.NewOptions(),
		Watch:    parser.NewOptions(),
		Snapshot: parser.NewOptions(),
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load %s options: %w", section, err)
	}

	var opts *parser.Options
	switch section {
	case "generate":
		opts = cfg.Generate
	case "watch":
		opts = cfg.Watch
	case "snapshot":
		opts = cfg.Snapshot
	default:
		return nil, fmt.Errorf("unknown config section %q", section)
	}
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// formats lists the accepted --format values for help output.
func formats() []string {
	out := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		out = append(out, string(f))
	}
	return out
}
