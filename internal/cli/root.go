// Package cli implements the quote-service command line: the HTTP server
// and offline quoting against a cost model file or the built-in tables.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/logger"
)

type rootOptions struct {
	costModelFile string
	logLevel      string
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "quote-service",
		Short: "Packaging quote engine",
		Long: `quote-service prices custom packaging orders: unit prices with a full cost
breakdown, multi-quantity comparisons with savings analysis, and shareable
comparison links.

Without a subcommand it starts the HTTP API.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := opts.logLevel
			if level == "" {
				level = config.Load().Log.Level
			}
			logger.InitWithWriter(cmd.ErrOrStderr(), level, false)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.costModelFile, "cost-model", "", "YAML cost model file (overrides PRICING_COST_MODEL_FILE)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (defaults to LOG_LEVEL)")

	root.AddCommand(
		newServeCommand(opts),
		newQuoteCommand(opts),
		newCompareCommand(opts),
		newCostModelCommand(opts),
	)
	return root
}

// costModelPath prefers the flag over the environment.
func (o *rootOptions) costModelPath() string {
	if o.costModelFile != "" {
		return o.costModelFile
	}
	return config.Load().Pricing.CostModelFile
}
