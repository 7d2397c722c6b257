package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const levelTrace = slog.Level(-8)

var (
	configFiles    []string
	level, version string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "classdiagramgen",
	Short:         "Generate class diagrams from C# and Java sources",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "trace", "log level (trace, debug, info, warn, error, debug+1, etc)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")
}

// parseLevel accepts slog level names plus "trace".
func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(strings.TrimSpace(s), "trace") {
		return levelTrace, nil
	}
	var ll slog.Level
	if err := ll.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return ll, nil
}

// newLogger writes to w, which is stderr in practice: stdout may carry a
// diagram. Terminals get the text handler, everything else JSON.
func newLogger(w io.Writer, ll slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ll}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	ll, err := parseLevel(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l := newLogger(os.Stderr, ll)
	slog.SetDefault(l)

	if len(configFiles) > 0 {
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("classdiagram")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Info("using config file(s)")
	} else {
		l.With("error", err, "config", viper.ConfigFileUsed()).Debug("unable to use config file(s)")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			configBytes, err := os.ReadFile(file)
			if err != nil {
				l.With("error", err, "file", file).Warn("failed to read config file")
				continue
			}
			if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
				l.With("error", err, "file", file).Warn("failed to merge config file")
			} else {
				l.With("file", file).Info("merged config file")
			}
		}
	}
	if len(version) > 0 {
		viper.Set("version", version)
	}

	// the config file may lower the level when the flag was left at its default
	if llstr := viper.GetString("common.log.level"); llstr != "" && !rootCmd.PersistentFlags().Changed("level") {
		cll, err := parseLevel(llstr)
		if err != nil {
			l.With("error", err).Warn("ignoring common.log.level")
			return
		}
		slog.SetDefault(newLogger(os.Stderr, cll))
	}
}
