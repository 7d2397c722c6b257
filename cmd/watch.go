package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/classdiagramgen/pkg/action/watch"
	"github.com/cmmoran/classdiagramgen/pkg/parser"
)

func init() {
	rootCmd.AddCommand(NewWatchCommand(viper.GetViper()))
}

func NewWatchCommand(v *viper.Viper) *cobra.Command {
	var metricsAddr string

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "regenerate the diagram whenever a source changes",
		Args:  cobra.NoArgs,
		PreRunE: func(c *cobra.Command, _ []string) error {
			return bindOptions(v, c, "watch")
		},
		RunE: func(c *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, "watch")
			if err != nil {
				return err
			}

			ctx := c.Context()
			if metricsAddr != "" {
				stop := serveMetrics(metricsAddr)
				defer stop()
			}
			return watch.Run(ctx, opts, nil)
		},
	}
	addOptionFlags(watchCmd, parser.NewOptions())
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	return watchCmd
}

// serveMetrics exposes /metrics until the returned func is called.
func serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("metrics server starting", "addr", addr)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
