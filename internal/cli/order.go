package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/service"
)

// orderFlags are the design and options shared by quote and compare.
type orderFlags struct {
	packageType string
	width       float64
	height      float64
	depth       float64
	thickness   float64
	material    string

	printing    string
	colors      int
	doubleSided bool

	delivery string
	urgency  string
	jsonOut  bool
}

func (f *orderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.packageType, "type", "", "package type, e.g. flat_3_side, stand_up, gusset")
	fs.Float64Var(&f.width, "width", 0, "width in mm")
	fs.Float64Var(&f.height, "height", 0, "height in mm")
	fs.Float64Var(&f.depth, "depth", 0, "depth (gusset) in mm")
	fs.Float64Var(&f.thickness, "thickness", 0, "film thickness in microns")
	fs.StringVar(&f.material, "material", "", "PE, PP, PET, ALUMINUM or PAPER_LAMINATE")
	fs.StringVar(&f.printing, "printing", "", "digital or gravure; omit for unprinted")
	fs.IntVar(&f.colors, "colors", 0, "number of print colors")
	fs.BoolVar(&f.doubleSided, "double-sided", false, "print both faces")
	fs.StringVar(&f.delivery, "delivery", string(model.DeliveryDomestic), "domestic or international")
	fs.StringVar(&f.urgency, "urgency", string(model.UrgencyStandard), "standard or express")
	fs.BoolVar(&f.jsonOut, "json", false, "print JSON instead of a table")

	for _, name := range []string{"type", "width", "height", "thickness", "material"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (f *orderFlags) baseParams() dto.BaseParams {
	p := dto.BaseParams{
		Specification: model.PackageSpecification{
			PackageType:      model.PackageType(f.packageType),
			WidthMm:          f.width,
			HeightMm:         f.height,
			DepthMm:          f.depth,
			ThicknessMicrons: f.thickness,
			MaterialType:     model.MaterialType(f.material),
		},
		DeliveryLocation: model.DeliveryLocation(f.delivery),
		Urgency:          model.Urgency(f.urgency),
	}
	if f.printing != "" {
		p.Printing = &model.PrintingOption{
			Type:        model.PrintingType(f.printing),
			Colors:      f.colors,
			DoubleSided: f.doubleSided,
		}
	}
	p.Normalize()
	return p
}

// newPricer prices with the cost model file when one is given and with the
// built-in tables otherwise. The CLI never reads the database.
func newPricer(ctx context.Context, opts *rootOptions) (*service.PricingService, error) {
	resolved, err := service.ResolveCostModel(ctx, opts.costModelPath(), nil)
	if err != nil {
		return nil, err
	}
	return service.NewPricingService(resolved.Model), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeError expands a pricing error into one line per issue.
func describeError(err error) error {
	var qe *model.QuoteError
	if !errors.As(err, &qe) || len(qe.Issues) <= 1 {
		return err
	}
	msg := string(qe.Kind)
	for _, issue := range qe.Issues {
		msg += fmt.Sprintf("\n  - %s [%s] %s", issue.Field, issue.Kind, issue.Message)
	}
	return errors.New(msg)
}
