package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/classdiagramgen/pkg/action/snapshot"
	"github.com/cmmoran/classdiagramgen/pkg/parser"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand(viper.GetViper()))
}

func NewSnapshotCommand(v *viper.Viper) *cobra.Command {
	var manifestPath string

	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "record and compare diagram versions",
	}
	snapCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "snapshots/manifest.yaml", "snapshot manifest file")

	var name, ver string
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "generate a diagram and record it as a version",
		Args:  cobra.NoArgs,
		PreRunE: func(c *cobra.Command, _ []string) error {
			return bindOptions(v, c, "snapshot")
		},
		RunE: func(c *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, "snapshot")
			if err != nil {
				return err
			}
			if name == "" {
				name = opts.Title
			}
			s, err := snapshot.Record(c.Context(), opts, manifestPath, name, ver)
			if err != nil {
				return err
			}
			slog.Info("recorded snapshot", "id", s.ID, "name", s.Name, "version", s.Version, "file", s.File)
			return nil
		},
	}
	addOptionFlags(recordCmd, parser.NewOptions())
	recordCmd.Flags().StringVarP(&name, "name", "n", "", "snapshot name (default: the title)")
	recordCmd.Flags().StringVarP(&ver, "version", "V", "", "snapshot version")
	_ = recordCmd.MarkFlagRequired("version")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "print the snapshot manifest",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(c.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("encode manifest: %w", err)
			}
			return enc.Close()
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the previous and current snapshots",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			diff, err := snapshot.Diff(manifestPath)
			if err != nil {
				return err
			}
			if diff == "" {
				slog.Info("no changes between snapshots")
				return nil
			}
			_, err = fmt.Fprint(c.OutOrStdout(), diff)
			return err
		},
	}

	snapCmd.AddCommand(recordCmd, listCmd, diffCmd)
	return snapCmd
}
