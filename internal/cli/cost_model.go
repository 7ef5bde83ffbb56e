package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guttosm/quote-service/internal/service"
)

func newCostModelCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost-model",
		Short: "Inspect and check cost model files",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "dump",
			Short: "Print the effective cost model as YAML",
			Long: `Print the cost model the CLI prices with: the --cost-model file merged over
the built-in tables, or the built-in tables alone. The output is a complete
file that can be edited and loaded back.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				resolved, err := service.ResolveCostModel(cmd.Context(), opts.costModelPath(), nil)
				if err != nil {
					return err
				}
				return service.EncodeCostModel(cmd.OutOrStdout(), resolved.Model)
			},
		},
		&cobra.Command{
			Use:   "validate FILE",
			Short: "Check that a YAML cost model loads and is consistent",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := service.LoadCostModelFile(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d package types, currency %s)\n", args[0], len(m.SizeLimits), m.Currency)
				return nil
			},
		},
	)
	return cmd
}
