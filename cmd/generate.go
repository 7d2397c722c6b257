package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/classdiagramgen/pkg/action/generate"
	"github.com/cmmoran/classdiagramgen/pkg/parser"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand(viper.GetViper()))
}

func NewGenerateCommand(v *viper.Viper) *cobra.Command {
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a class diagram",
		Long:  "Parse C# or Java sources and write a PlantUML class diagram or a model export",
		Args:  cobra.NoArgs,
		PreRunE: func(c *cobra.Command, _ []string) error {
			return bindOptions(v, c, "generate")
		},
		RunE: func(c *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, "generate")
			if err != nil {
				return err
			}
			_, err = generate.Run(c.Context(), opts)
			return err
		},
	}
	addOptionFlags(genCmd, parser.NewOptions())
	return genCmd
}
