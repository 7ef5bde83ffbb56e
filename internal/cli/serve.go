package cli

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/app"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API. Configuration comes from the environment (PORT,
MONGODB_*, REDIS_*, AUTH_*, PRICING_*); see README.md.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg := config.Load()
	if opts.costModelFile != "" {
		cfg.Pricing.CostModelFile = opts.costModelFile
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	a, err := app.InitializeApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return a.Run(cmd.Context())
}
