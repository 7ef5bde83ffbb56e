package service

import (
	"errors"
	"fmt"
	"slices"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// Profile holds the quantity rules of one call site.
type Profile struct {
	Name          string
	MinQuantity   int
	MaxQuantity   int
	MaxQuantities int
}

var (
	// SingleProfile applies to a single calculation.
	SingleProfile = Profile{Name: "single", MinQuantity: 100, MaxQuantity: 100_000, MaxQuantities: 1}
	// ComparisonProfile applies to a multi-quantity comparison.
	ComparisonProfile = Profile{Name: "comparison", MinQuantity: 500, MaxQuantity: 1_000_000, MaxQuantities: 10}
)

// ProfileByName resolves a profile name, defaulting to SingleProfile.
func ProfileByName(name string) Profile {
	if name == ComparisonProfile.Name {
		return ComparisonProfile
	}
	return SingleProfile
}

// Validator checks specifications and quantities against a cost model.
// It holds no mutable state.
type Validator struct {
	costs *model.CostModel
}

// NewValidator creates a validator over the given cost model.
func NewValidator(costs *model.CostModel) *Validator {
	return &Validator{costs: costs}
}

// Validate returns every issue found for one quantity. An empty result means valid.
func (v *Validator) Validate(spec model.PackageSpecification, quantity int, product model.ProductRef, profile Profile) model.Issues {
	issues := v.ValidateSpecification(spec)
	issues = append(issues, v.ValidateQuantity(quantity, product, profile)...)
	return issues
}

// ValidateSingle validates a single calculation and returns the first blocking
// issue. A quantity below the product minimum is reported before anything else.
func (v *Validator) ValidateSingle(req model.OrderRequest) error {
	issues := v.Validate(req.Specification, req.Quantity, req.Product, SingleProfile)
	issues = append(issues, v.ValidatePrinting(req.Printing)...)

	first := -1
	for n, i := range issues {
		if !i.IsError() {
			continue
		}
		if i.Kind == model.KindMinimumQuantityNotMet {
			first = n
			break
		}
		if first < 0 {
			first = n
		}
	}
	if first < 0 {
		return nil
	}
	i := issues[first]
	return &model.QuoteError{Kind: i.Kind, Message: i.Message, Issues: model.Issues{i}}
}

// ValidateSpecification checks dimensions, size ceilings and material compatibility.
func (v *Validator) ValidateSpecification(spec model.PackageSpecification) model.Issues {
	var issues model.Issues

	issues = append(issues, checkDimension("widthMm", spec.WidthMm)...)
	issues = append(issues, checkDimension("heightMm", spec.HeightMm)...)
	if spec.DepthMm < 0 {
		issues = append(issues, model.NewIssue(model.KindInvalidDimension, "depthMm", "depthMm must not be negative, got %g", spec.DepthMm))
	}
	if spec.ThicknessMicrons <= 0 || spec.ThicknessMicrons > model.MaxThicknessMicrons {
		issues = append(issues, model.NewIssue(model.KindInvalidDimension, "thicknessMicrons",
			"thicknessMicrons must be in (0, %g], got %g", model.MaxThicknessMicrons, spec.ThicknessMicrons))
	}
	if spec.PrintingColors < 0 || spec.PrintingColors > model.MaxPrintingColors {
		issues = append(issues, model.NewIssue(model.KindInvalidPrinting, "printingColors",
			"printingColors must be in [0, %d], got %d", model.MaxPrintingColors, spec.PrintingColors))
	}

	if _, err := v.costs.ProcessingBase(spec.PackageType); err != nil {
		issues = append(issues, model.NewIssue(model.KindUnknownPackageType, "packageType", "%s", messageOf(err)))
	}
	if _, err := v.costs.Material(spec.MaterialType); err != nil {
		issues = append(issues, model.NewIssue(model.KindUnknownMaterialType, "materialType", "%s", messageOf(err)))
	}

	if limit, ok := v.costs.SizeLimit(spec.PackageType); ok {
		issues = append(issues, checkSizeLimit(spec, limit)...)
	}

	if inc, ok := v.costs.Incompatibility(spec.PackageType, spec.MaterialType); ok {
		issues = append(issues, model.NewIssue(model.KindIncompatibleCombination, "materialType",
			"%s cannot be made from %s: %s", spec.PackageType, spec.MaterialType, inc.Reason))
	}

	return issues
}

// ValidatePrinting range-checks a printing option. Colour capability of the
// press is not enforced beyond the range.
func (v *Validator) ValidatePrinting(printing *model.PrintingOption) model.Issues {
	if printing == nil {
		return nil
	}
	var issues model.Issues
	if _, err := v.costs.PrintingRate(printing.Type); err != nil {
		issues = append(issues, model.NewIssue(model.KindUnknownPrintingType, "printing.type", "%s", messageOf(err)))
	}
	if printing.Colors < model.MinPrintingColors || printing.Colors > model.MaxPrintingColors {
		issues = append(issues, model.NewIssue(model.KindInvalidPrinting, "printing.colors",
			"printing.colors must be in [%d, %d], got %d", model.MinPrintingColors, model.MaxPrintingColors, printing.Colors))
	}
	return issues
}

// ValidateQuantity checks the profile bounds and the product minimum.
func (v *Validator) ValidateQuantity(quantity int, product model.ProductRef, profile Profile) model.Issues {
	var issues model.Issues
	if quantity < profile.MinQuantity || quantity > profile.MaxQuantity {
		issues = append(issues, model.NewIssue(model.KindInvalidQuantity, "quantity",
			"quantity %d must be in [%d, %d]", quantity, profile.MinQuantity, profile.MaxQuantity))
	}
	if quantity < product.MinOrderQuantity {
		issues = append(issues, model.NewIssue(model.KindMinimumQuantityNotMet, "quantity",
			"quantity %d is below the minimum order quantity %d", quantity, product.MinOrderQuantity))
	}
	return issues
}

// ValidateQuantityList checks a comparison's quantity list as a whole: emptiness,
// the distinct-value cap, duplicates and ordering. It returns the distinct
// quantities in caller order.
func (v *Validator) ValidateQuantityList(quantities []int, profile Profile) ([]int, model.Issues) {
	var issues model.Issues
	if len(quantities) == 0 {
		return nil, model.Issues{model.NewIssue(model.KindEmptyQuantities, "quantities", "at least one quantity is required")}
	}

	distinct := make([]int, 0, len(quantities))
	var duplicates []int
	for _, q := range quantities {
		if slices.Contains(distinct, q) {
			if !slices.Contains(duplicates, q) {
				duplicates = append(duplicates, q)
			}
			continue
		}
		distinct = append(distinct, q)
	}

	if len(distinct) > profile.MaxQuantities {
		issues = append(issues, model.NewIssue(model.KindTooManyQuantities, "quantities",
			"at most %d distinct quantities are allowed, got %d", profile.MaxQuantities, len(distinct)))
	}
	if len(duplicates) > 0 {
		issues = append(issues, model.NewWarning(model.KindDuplicateQuantities, "quantities",
			"duplicate quantities %v were priced once", duplicates))
	}
	if !slices.IsSorted(distinct) {
		issues = append(issues, model.NewWarning(model.KindQuantityOrderWarning, "quantities",
			"quantities %v are not in ascending order", distinct))
	}
	return distinct, issues
}

func checkDimension(field string, value float64) model.Issues {
	if value < model.MinDimensionMm || value > model.MaxDimensionMm {
		return model.Issues{model.NewIssue(model.KindInvalidDimension, field,
			"%s must be in [%g, %g], got %g", field, model.MinDimensionMm, model.MaxDimensionMm, value)}
	}
	return nil
}

func checkSizeLimit(spec model.PackageSpecification, limit model.SizeLimit) model.Issues {
	var issues model.Issues
	exceeds := func(field string, value, ceiling float64) {
		issues = append(issues, model.NewIssue(model.KindSizeViolation, field,
			"%s %g exceeds %g for %s", field, value, ceiling, spec.PackageType))
	}
	if limit.MaxWidthMm > 0 && spec.WidthMm > limit.MaxWidthMm {
		exceeds("widthMm", spec.WidthMm, limit.MaxWidthMm)
	}
	if limit.MaxHeightMm > 0 && spec.HeightMm > limit.MaxHeightMm {
		exceeds("heightMm", spec.HeightMm, limit.MaxHeightMm)
	}
	if spec.DepthMm > limit.MaxDepthMm {
		if limit.MaxDepthMm == 0 {
			issues = append(issues, model.NewIssue(model.KindSizeViolation, "depthMm",
				"%s has no depth, got depthMm %g", spec.PackageType, spec.DepthMm))
		} else {
			exceeds("depthMm", spec.DepthMm, limit.MaxDepthMm)
		}
	}
	return issues
}

// String is used in log lines.
func (p Profile) String() string {
	return fmt.Sprintf("%s[%d..%d]", p.Name, p.MinQuantity, p.MaxQuantity)
}

func messageOf(err error) string {
	var qe *model.QuoteError
	if errors.As(err, &qe) {
		return qe.Message
	}
	return err.Error()
}
