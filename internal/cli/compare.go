package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/service"
)

func newCompareCommand(opts *rootOptions) *cobra.Command {
	var (
		flags        orderFlags
		quantities   []int
		xlsxPath     string
		skipAnalysis bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare unit prices across several quantities",
		Example: `  quote-service compare --type flat_3_side --width 100 --height 150 \
    --thickness 80 --material PE --quantities 1000,5000,10000 --xlsx quotes.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pricer, err := newPricer(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer pricer.Stop()

			params := flags.baseParams()
			comparison, err := pricer.Compare(params.Specification, quantities, service.ComparisonOptions{
				Product:          pricer.ResolveProduct(params.Specification.PackageType, nil),
				Printing:         params.Printing,
				DeliveryLocation: params.DeliveryLocation,
				Urgency:          params.Urgency,
				SkipAnalysis:     skipAnalysis,
			})
			if err != nil {
				return describeError(err)
			}

			taxRate := pricer.CostModel().TaxRate
			if xlsxPath != "" {
				if err := writeWorkbookFile(xlsxPath, service.NewComparisonExporter(taxRate), comparison); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", xlsxPath)
			}

			resp := dto.NewComparisonResponse(comparison, taxRate)
			if flags.jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return printComparison(cmd.OutOrStdout(), resp)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntSliceVar(&quantities, "quantities", nil, "comma separated quantities, e.g. 1000,5000,10000")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the comparison to this XLSX file")
	cmd.Flags().BoolVar(&skipAnalysis, "skip-analysis", false, "omit price breaks, economies of scale and trend")
	_ = cmd.MarkFlagRequired("quantities")
	return cmd
}

func writeWorkbookFile(path string, exporter *service.ComparisonExporter, comparison model.MultiQuantityComparison) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := exporter.WriteXLSX(f, comparison); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printComparison(out io.Writer, c dto.ComparisonResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "QUANTITY\tUNIT PRICE\tTOTAL\tDISCOUNT\tLEAD TIME\tSTATUS\n")
	for _, row := range c.Results {
		if row.Quote == nil {
			status := "error"
			if row.Error != nil {
				status = row.Error.Error()
			}
			fmt.Fprintf(w, "%d\t-\t-\t-\t-\t%s\n", row.Quantity, status)
			continue
		}
		q := row.Quote
		mark := ""
		if row.Quantity == c.BestQuantity {
			mark = " (best)"
		}
		fmt.Fprintf(w, "%d\t%.2f\t%.0f\t%g%%\t%dd\tok%s\n",
			row.Quantity, q.UnitPrice, q.Breakdown.Total, q.DiscountPercent, q.LeadTimeDays, mark)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(c.Savings) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "FROM\tTO\tUNIT SAVINGS\tPERCENT\n")
		for _, s := range c.Savings {
			fmt.Fprintf(w, "%d\t%d\t%.2f\t%.1f%%\n", s.FromQuantity, s.ToQuantity, s.UnitSavings, s.Percent)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if c.Recommendation != nil {
		fmt.Fprintf(out, "\nRecommended: %d at %.2f %s/unit. %s\n", c.Recommendation.Quantity, c.Recommendation.UnitPrice, c.Currency, c.Recommendation.Rationale)
	}
	if c.Alternative != nil {
		fmt.Fprintf(out, "Alternative: %d at %.2f %s/unit. %s\n", c.Alternative.Quantity, c.Alternative.UnitPrice, c.Currency, c.Alternative.Rationale)
	}
	for _, warning := range c.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning.Message)
	}
	return nil
}
