package service

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/rs/zerolog/log"
)

// ComparisonOptions are the settings shared by every quantity in a comparison.
type ComparisonOptions struct {
	Product          model.ProductRef
	Printing         *model.PrintingOption
	DeliveryLocation model.DeliveryLocation
	Urgency          model.Urgency
	// SkipAnalysis omits price breaks, economies of scale and trend.
	SkipAnalysis bool
}

// Comparator prices one specification at several quantities.
type Comparator struct {
	validator *Validator
	engine    QuoteCalculator
	costs     *model.CostModel
}

// NewComparator creates a comparator. The validator and engine must share costs.
func NewComparator(costs *model.CostModel, validator *Validator, engine QuoteCalculator) *Comparator {
	return &Comparator{validator: validator, engine: engine, costs: costs}
}

// CompareQuantities validates the batch, prices every distinct quantity in
// parallel and derives savings and a recommendation. Problems with the shared
// specification or the quantity list fail the whole batch with every issue
// collected. Problems with one quantity are reported on that row only.
func (c *Comparator) CompareQuantities(spec model.PackageSpecification, quantities []int, opts ComparisonOptions) (model.MultiQuantityComparison, error) {
	distinct, issues := c.validator.ValidateQuantityList(quantities, ComparisonProfile)
	issues = append(issues, c.validator.ValidateSpecification(spec)...)
	issues = append(issues, c.validator.ValidatePrinting(opts.Printing)...)
	if err := issues.Err(); err != nil {
		return model.MultiQuantityComparison{}, err
	}

	base := model.OrderRequest{
		Product:          opts.Product,
		Specification:    spec,
		Printing:         opts.Printing,
		DeliveryLocation: opts.DeliveryLocation,
		Urgency:          opts.Urgency,
	}

	results := make([]model.QuantityResult, len(distinct))
	var wg sync.WaitGroup
	for i, q := range distinct {
		wg.Add(1)
		go func(i, q int) {
			defer wg.Done()
			results[i] = c.priceOne(base.WithQuantity(q))
		}(i, q)
	}
	wg.Wait()

	out := model.MultiQuantityComparison{
		Specification:    spec,
		Printing:         opts.Printing,
		DeliveryLocation: opts.DeliveryLocation,
		Urgency:          opts.Urgency,
		Currency:         c.costs.Currency,
		Results:          results,
		Warnings:         issues.Warnings(),
	}

	ascending := sortedByQuantity(out.Succeeded())
	out.Savings = savingsSteps(ascending)
	if rec := recommend(ascending, c.costs.Currency); rec != nil {
		out.Recommendation = rec
		out.BestQuantity = rec.Quantity
		out.Alternative = balanced(ascending, rec.Quantity)
	}
	if !opts.SkipAnalysis && len(ascending) > 0 {
		out.Analysis = c.analyze(ascending)
	}
	return out, nil
}

func (c *Comparator) priceOne(req model.OrderRequest) model.QuantityResult {
	row := model.QuantityResult{Quantity: req.Quantity}

	if err := c.validator.ValidateQuantity(req.Quantity, req.Product, ComparisonProfile).Err(); err != nil {
		row.Error = asQuoteError(err)
		log.Debug().Int("quantity", req.Quantity).Str("profile", ComparisonProfile.String()).Err(err).Msg("quantity rejected")
		return row
	}

	quote, err := c.engine.Calculate(req)
	if err != nil {
		row.Error = asQuoteError(err)
		log.Debug().Int("quantity", req.Quantity).Err(err).Msg("quantity could not be priced")
		return row
	}
	row.Quote = &quote
	return row
}

func asQuoteError(err error) *model.QuoteError {
	var qe *model.QuoteError
	if errors.As(err, &qe) {
		return qe
	}
	return &model.QuoteError{Kind: model.KindInvalidQuantity, Message: err.Error()}
}

func sortedByQuantity(rows []model.QuantityResult) []model.QuantityResult {
	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b model.QuantityResult) int { return a.Quantity - b.Quantity })
	return sorted
}

// savingsSteps compares each quantity with the next smaller one.
func savingsSteps(ascending []model.QuantityResult) []model.SavingsStep {
	if len(ascending) < 2 {
		return []model.SavingsStep{}
	}
	steps := make([]model.SavingsStep, 0, len(ascending)-1)
	for i := 1; i < len(ascending); i++ {
		prev, cur := ascending[i-1].Quote, ascending[i].Quote
		step := model.SavingsStep{
			FromQuantity:  ascending[i-1].Quantity,
			ToQuantity:    ascending[i].Quantity,
			Amount:        prev.UnitPrice - cur.UnitPrice,
			MarginalTotal: cur.Breakdown.Total - prev.Breakdown.Total,
		}
		if prev.UnitPrice != 0 {
			step.Percent = step.Amount / prev.UnitPrice * 100
		}
		steps = append(steps, step)
	}
	return steps
}

// recommend picks the lowest unit price; ties go to the smaller quantity.
func recommend(ascending []model.QuantityResult, currency string) *model.Recommendation {
	if len(ascending) == 0 {
		return nil
	}
	best := ascending[0]
	for _, r := range ascending[1:] {
		if r.Quote.UnitPrice < best.Quote.UnitPrice {
			best = r
		}
	}

	smallest := ascending[0]
	rec := &model.Recommendation{
		Kind:      model.RecommendCostOptimized,
		Quantity:  best.Quantity,
		UnitPrice: best.Quote.UnitPrice,
	}
	switch {
	case len(ascending) == 1:
		rec.Rationale = fmt.Sprintf("only %d units could be priced, at %.2f %s per unit",
			best.Quantity, best.Quote.UnitPrice, currency)
	case best.Quantity == smallest.Quantity:
		rec.Rationale = fmt.Sprintf("%d units already has the lowest unit price (%.2f %s); larger quantities do not lower it",
			best.Quantity, best.Quote.UnitPrice, currency)
	default:
		delta := smallest.Quote.UnitPrice - best.Quote.UnitPrice
		pct := 0.0
		if smallest.Quote.UnitPrice != 0 {
			pct = delta / smallest.Quote.UnitPrice * 100
		}
		rec.Rationale = fmt.Sprintf("%d units costs %.2f %s per unit, %.2f %s (%.1f%%) less than %d units",
			best.Quantity, best.Quote.UnitPrice, currency, delta, currency, pct, smallest.Quantity)
	}
	return rec
}

// balanced suggests the median quantity when it differs from the cheapest one.
func balanced(ascending []model.QuantityResult, best int) *model.Recommendation {
	if len(ascending) < 3 {
		return nil
	}
	mid := ascending[len(ascending)/2]
	if mid.Quantity == best {
		return nil
	}
	return &model.Recommendation{
		Kind:      model.RecommendBalanced,
		Quantity:  mid.Quantity,
		UnitPrice: mid.Quote.UnitPrice,
		Rationale: fmt.Sprintf("%d units keeps stock and capital moderate while staying at %.2f per unit",
			mid.Quantity, mid.Quote.UnitPrice),
	}
}

func (c *Comparator) analyze(ascending []model.QuantityResult) *model.ComparisonAnalysis {
	a := &model.ComparisonAnalysis{
		PriceBreaks: make([]model.PriceBreak, 0, len(ascending)),
		Economies:   make([]model.ScaleEfficiency, 0, len(ascending)),
	}
	prices := make([]float64, len(ascending))
	baseline := ascending[0].Quote.UnitPrice

	for i, r := range ascending {
		prices[i] = r.Quote.UnitPrice

		pb := model.PriceBreak{Quantity: r.Quantity, Label: "base"}
		if tier, ok := c.costs.DiscountTier(r.Quantity); ok {
			pb.Label = tier.Label
			pb.DiscountRate = tier.Rate
		}
		a.PriceBreaks = append(a.PriceBreaks, pb)

		actual := r.Quote.UnitPrice * float64(r.Quantity)
		atBaseline := baseline * float64(r.Quantity)
		eff := model.ScaleEfficiency{
			Quantity:          r.Quantity,
			UnitPrice:         r.Quote.UnitPrice,
			TotalSavings:      atBaseline - actual,
			EfficiencyPercent: 100,
		}
		if atBaseline > 0 {
			eff.EfficiencyPercent = actual / atBaseline * 100
		}
		a.Economies = append(a.Economies, eff)
	}

	a.Trend = priceTrend(prices)
	a.DiminishingReturns = diminishingReturns(prices)
	return a
}

// priceTrend compares the average unit price of the larger half against the smaller half.
func priceTrend(prices []float64) model.PriceTrend {
	if len(prices) < 2 {
		return model.TrendStable
	}
	half := len(prices) / 2
	first, second := mean(prices[:half]), mean(prices[half:])
	if first == 0 {
		return model.TrendStable
	}
	switch diff := (second - first) / first; {
	case diff < -0.05:
		return model.TrendDecreasing
	case diff > 0.05:
		return model.TrendIncreasing
	default:
		return model.TrendStable
	}
}

// diminishingReturns compares the last step's relative improvement to the first one's.
func diminishingReturns(prices []float64) float64 {
	n := len(prices)
	if n < 3 || prices[0] == 0 || prices[n-2] == 0 {
		return 0
	}
	first := (prices[0] - prices[1]) / prices[0]
	last := (prices[n-2] - prices[n-1]) / prices[n-2]
	if first == 0 {
		return 0
	}
	return math.Round((1 - last/first) * 100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
