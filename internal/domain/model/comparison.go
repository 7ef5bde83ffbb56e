package model

// QuantityResult is one row of a comparison. Exactly one of Quote or Error is set.
//
// @Description Quote or per-quantity error for one requested quantity
type QuantityResult struct {
	Quantity int          `json:"quantity" bson:"quantity" example:"5000"`
	Quote    *QuoteResult `json:"quote,omitempty" bson:"quote,omitempty"`
	Error    *QuoteError  `json:"error,omitempty" bson:"error,omitempty"`
} // @name QuantityResult

// OK reports whether the quantity was priced.
func (r QuantityResult) OK() bool {
	return r.Quote != nil && r.Error == nil
}

// SavingsStep compares two adjacent quantities in ascending order.
//
// @Description Unit price delta between consecutive quantity tiers
type SavingsStep struct {
	FromQuantity  int     `json:"fromQuantity" bson:"from_quantity" example:"1000"`
	ToQuantity    int     `json:"toQuantity" bson:"to_quantity" example:"5000"`
	Amount        float64 `json:"amount" bson:"amount" example:"12.5"`
	Percent       float64 `json:"percent" bson:"percent" example:"31.2"`
	MarginalTotal float64 `json:"marginalTotal" bson:"marginal_total" example:"48000"`
} // @name SavingsStep

// RecommendationKind names the strategy a recommendation follows.
type RecommendationKind string

const (
	RecommendCostOptimized RecommendationKind = "cost_optimized"
	RecommendBalanced      RecommendationKind = "balanced"
)

// Recommendation points the buyer at one quantity.
//
// @Description Recommended quantity with rationale
type Recommendation struct {
	Kind      RecommendationKind `json:"kind" bson:"kind" example:"cost_optimized"`
	Quantity  int                `json:"quantity" bson:"quantity" example:"10000"`
	UnitPrice float64            `json:"unitPrice" bson:"unit_price" example:"11.2"`
	Rationale string             `json:"rationale" bson:"rationale"`
} // @name Recommendation

// PriceBreak labels the discount tier a quantity reached.
type PriceBreak struct {
	Quantity     int     `json:"quantity" bson:"quantity"`
	Label        string  `json:"label" bson:"label"`
	DiscountRate float64 `json:"discountRate" bson:"discount_rate"`
}

// ScaleEfficiency compares a quantity against the smallest quantity's unit price.
type ScaleEfficiency struct {
	Quantity          int     `json:"quantity" bson:"quantity"`
	UnitPrice         float64 `json:"unitPrice" bson:"unit_price"`
	TotalSavings      float64 `json:"totalSavings" bson:"total_savings"`
	EfficiencyPercent float64 `json:"efficiencyPercent" bson:"efficiency_percent"`
}

// PriceTrend summarises how unit price moves as quantity grows.
type PriceTrend string

const (
	TrendDecreasing PriceTrend = "decreasing"
	TrendStable     PriceTrend = "stable"
	TrendIncreasing PriceTrend = "increasing"
)

// ComparisonAnalysis is the derived view over the successful quotes.
type ComparisonAnalysis struct {
	PriceBreaks        []PriceBreak      `json:"priceBreaks" bson:"price_breaks"`
	Economies          []ScaleEfficiency `json:"economiesOfScale" bson:"economies_of_scale"`
	Trend              PriceTrend        `json:"trend" bson:"trend"`
	DiminishingReturns float64           `json:"diminishingReturnsPercent" bson:"diminishing_returns_percent"`
}

// MultiQuantityComparison is the outcome of pricing one design at several quantities.
// Results keep the caller's order; Savings is computed on the ascending view.
//
// @Description Quotes for several quantities with savings and recommendation
type MultiQuantityComparison struct {
	Specification    PackageSpecification `json:"specification" bson:"specification"`
	Printing         *PrintingOption      `json:"printing,omitempty" bson:"printing,omitempty"`
	DeliveryLocation DeliveryLocation     `json:"deliveryLocation" bson:"delivery_location"`
	Urgency          Urgency              `json:"urgency" bson:"urgency"`
	Currency         string               `json:"currency" bson:"currency"`
	Results          []QuantityResult     `json:"results" bson:"results"`
	Savings          []SavingsStep        `json:"savings" bson:"savings"`
	BestQuantity     int                  `json:"bestQuantity,omitempty" bson:"best_quantity,omitempty"`
	Recommendation   *Recommendation      `json:"recommendation,omitempty" bson:"recommendation,omitempty"`
	Alternative      *Recommendation      `json:"alternative,omitempty" bson:"alternative,omitempty"`
	Analysis         *ComparisonAnalysis  `json:"analysis,omitempty" bson:"analysis,omitempty"`
	Warnings         Issues               `json:"warnings,omitempty" bson:"warnings,omitempty"`
} // @name MultiQuantityComparison

// Succeeded returns the priced rows in caller order.
func (c MultiQuantityComparison) Succeeded() []QuantityResult {
	out := make([]QuantityResult, 0, len(c.Results))
	for _, r := range c.Results {
		if r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Failed returns the rows that carry an error.
func (c MultiQuantityComparison) Failed() []QuantityResult {
	var out []QuantityResult
	for _, r := range c.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}
