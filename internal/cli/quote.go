package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guttosm/quote-service/internal/domain/dto"
)

func newQuoteCommand(opts *rootOptions) *cobra.Command {
	var (
		flags    orderFlags
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price one design at one quantity",
		Example: `  quote-service quote --type stand_up --width 140 --height 200 --depth 40 \
    --thickness 100 --material PET --qty 5000 --printing digital --colors 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pricer, err := newPricer(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer pricer.Stop()

			params := flags.baseParams()
			product := pricer.ResolveProduct(params.Specification.PackageType, nil)
			result, err := pricer.Quote(params.Order(product, quantity))
			if err != nil {
				return describeError(err)
			}

			resp := dto.NewQuoteResponse(result, pricer.CostModel().TaxRate)
			if flags.jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return printQuote(cmd.OutOrStdout(), resp)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&quantity, "qty", 0, "order quantity")
	_ = cmd.MarkFlagRequired("qty")
	return cmd
}

func printQuote(out io.Writer, q dto.QuoteResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := []struct {
		label string
		value float64
	}{
		{"Material", q.Breakdown.Material},
		{"Processing", q.Breakdown.Processing},
		{"Printing", q.Breakdown.Printing},
		{"Setup", q.Breakdown.Setup},
		{"Subtotal", q.Breakdown.Subtotal},
		{fmt.Sprintf("Discount (%g%%)", q.DiscountPercent), -q.Breakdown.Discount},
		{"Delivery", q.Breakdown.Delivery},
		{"Total", q.Breakdown.Total},
		{fmt.Sprintf("Tax (%g%%)", dto.Percent(q.TaxRate)), q.Tax},
		{"Total with tax", q.TotalWithTax},
	}

	fmt.Fprintf(w, "Quantity\t%d\t\n", q.Quantity)
	fmt.Fprintf(w, "Unit price\t%.2f %s\t\n", q.UnitPrice, q.Currency)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.0f\t\n", r.label, r.value)
	}
	fmt.Fprintf(w, "Lead time\t%d days\t\n", q.LeadTimeDays)
	fmt.Fprintf(w, "Valid until\t%s\t\n", q.ValidUntil.Format("2006-01-02"))
	return w.Flush()
}
