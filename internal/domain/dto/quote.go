package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// Yen rounds an amount half-up to a whole yen.
func Yen(v float64) float64 {
	return round(v, 0)
}

// UnitYen rounds a unit price to two decimals.
func UnitYen(v float64) float64 {
	return round(v, 2)
}

// Percent converts a rate to a percentage with one decimal.
func Percent(rate float64) float64 {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// BreakdownResponse is a price breakdown rounded to whole yen.
//
// @Description Cost components rounded for display
type BreakdownResponse struct {
	Material   float64 `json:"material" example:"0"`
	Processing float64 `json:"processing" example:"85500"`
	Printing   float64 `json:"printing" example:"0"`
	Setup      float64 `json:"setup" example:"0"`
	Subtotal   float64 `json:"subtotal" example:"85500"`
	Discount   float64 `json:"discount" example:"4275"`
	Delivery   float64 `json:"delivery" example:"0"`
	Total      float64 `json:"total" example:"81225"`
} // @name BreakdownResponse

// QuoteResponse is a quote prepared for display. Tax is added on the rounded
// total using the cost model's tax rate.
//
// @Description Quote rounded for display, with tax
type QuoteResponse struct {
	Quantity         int               `json:"quantity" example:"5000"`
	UnitPrice        float64           `json:"unitPrice" example:"16.25"`
	Currency         string            `json:"currency" example:"JPY"`
	Breakdown        BreakdownResponse `json:"breakdown"`
	DiscountPercent  float64           `json:"discountPercent" example:"5"`
	TaxRate          float64           `json:"taxRate" example:"0.1"`
	Tax              float64           `json:"tax" example:"8123"`
	TotalWithTax     float64           `json:"totalWithTax" example:"89348"`
	ValidUntil       time.Time         `json:"validUntil"`
	LeadTimeDays     int               `json:"leadTimeDays" example:"14"`
	MinOrderQuantity int               `json:"minOrderQuantity" example:"100"`
} // @name QuoteResponse

// NewQuoteResponse rounds q for display.
func NewQuoteResponse(q model.QuoteResult, taxRate float64) QuoteResponse {
	b := q.Breakdown
	total := decimal.NewFromFloat(b.Total).Round(0)
	tax := total.Mul(decimal.NewFromFloat(taxRate)).Round(0)

	return QuoteResponse{
		Quantity:  q.Quantity,
		UnitPrice: UnitYen(q.UnitPrice),
		Currency:  q.Currency,
		Breakdown: BreakdownResponse{
			Material:   Yen(b.Material),
			Processing: Yen(b.Processing),
			Printing:   Yen(b.Printing),
			Setup:      Yen(b.Setup),
			Subtotal:   Yen(b.Subtotal),
			Discount:   Yen(b.Discount),
			Delivery:   Yen(b.Delivery),
			Total:      total.InexactFloat64(),
		},
		DiscountPercent:  Percent(q.DiscountRate),
		TaxRate:          taxRate,
		Tax:              tax.InexactFloat64(),
		TotalWithTax:     total.Add(tax).InexactFloat64(),
		ValidUntil:       q.ValidUntil,
		LeadTimeDays:     q.LeadTimeDays,
		MinOrderQuantity: q.MinOrderQuantity,
	}
}

// QuantityRowResponse is one comparison row.
//
// @Description Quote or error for one requested quantity
type QuantityRowResponse struct {
	Quantity int               `json:"quantity" example:"5000"`
	Status   string            `json:"status" example:"ok" enums:"ok,error"`
	Quote    *QuoteResponse    `json:"quote,omitempty"`
	Error    *model.QuoteError `json:"error,omitempty"`
} // @name QuantityRowResponse

// SavingsStepResponse is a savings step rounded for display.
//
// @Description Savings between consecutive quantities
type SavingsStepResponse struct {
	FromQuantity  int     `json:"fromQuantity" example:"1000"`
	ToQuantity    int     `json:"toQuantity" example:"5000"`
	UnitSavings   float64 `json:"unitSavings" example:"12.5"`
	Percent       float64 `json:"percent" example:"31.2"`
	MarginalTotal float64 `json:"marginalTotal" example:"48000"`
} // @name SavingsStepResponse

// ComparisonResponse is a comparison prepared for display.
//
// @Description Multi-quantity comparison rounded for display
type ComparisonResponse struct {
	Specification    model.PackageSpecification `json:"specification"`
	Printing         *model.PrintingOption      `json:"printing,omitempty"`
	DeliveryLocation model.DeliveryLocation     `json:"deliveryLocation"`
	Urgency          model.Urgency              `json:"urgency"`
	Currency         string                     `json:"currency" example:"JPY"`
	Results          []QuantityRowResponse      `json:"results"`
	Savings          []SavingsStepResponse      `json:"savings"`
	BestQuantity     int                        `json:"bestQuantity,omitempty" example:"10000"`
	Recommendation   *model.Recommendation      `json:"recommendation,omitempty"`
	Alternative      *model.Recommendation      `json:"alternative,omitempty"`
	Analysis         *model.ComparisonAnalysis  `json:"analysis,omitempty"`
	Warnings         []model.Issue              `json:"warnings,omitempty"`
	Succeeded        int                        `json:"succeeded" example:"3"`
	Failed           int                        `json:"failed" example:"0"`
} // @name ComparisonResponse

// NewComparisonResponse rounds c for display. Row order is preserved.
func NewComparisonResponse(c model.MultiQuantityComparison, taxRate float64) ComparisonResponse {
	out := ComparisonResponse{
		Specification:    c.Specification,
		Printing:         c.Printing,
		DeliveryLocation: c.DeliveryLocation,
		Urgency:          c.Urgency,
		Currency:         c.Currency,
		Results:          make([]QuantityRowResponse, 0, len(c.Results)),
		Savings:          make([]SavingsStepResponse, 0, len(c.Savings)),
		BestQuantity:     c.BestQuantity,
		Recommendation:   roundRecommendation(c.Recommendation),
		Alternative:      roundRecommendation(c.Alternative),
		Analysis:         roundAnalysis(c.Analysis),
		Warnings:         c.Warnings,
	}

	for _, r := range c.Results {
		row := QuantityRowResponse{Quantity: r.Quantity, Status: "error", Error: r.Error}
		if r.OK() {
			q := NewQuoteResponse(*r.Quote, taxRate)
			row.Status = "ok"
			row.Quote = &q
			out.Succeeded++
		} else {
			out.Failed++
		}
		out.Results = append(out.Results, row)
	}

	for _, s := range c.Savings {
		out.Savings = append(out.Savings, SavingsStepResponse{
			FromQuantity:  s.FromQuantity,
			ToQuantity:    s.ToQuantity,
			UnitSavings:   UnitYen(s.Amount),
			Percent:       round(s.Percent, 1),
			MarginalTotal: Yen(s.MarginalTotal),
		})
	}
	return out
}

func roundRecommendation(r *model.Recommendation) *model.Recommendation {
	if r == nil {
		return nil
	}
	out := *r
	out.UnitPrice = UnitYen(r.UnitPrice)
	return &out
}

func roundAnalysis(a *model.ComparisonAnalysis) *model.ComparisonAnalysis {
	if a == nil {
		return nil
	}
	out := &model.ComparisonAnalysis{
		PriceBreaks:        a.PriceBreaks,
		Economies:          make([]model.ScaleEfficiency, len(a.Economies)),
		Trend:              a.Trend,
		DiminishingReturns: a.DiminishingReturns,
	}
	for i, e := range a.Economies {
		out.Economies[i] = model.ScaleEfficiency{
			Quantity:          e.Quantity,
			UnitPrice:         UnitYen(e.UnitPrice),
			TotalSavings:      Yen(e.TotalSavings),
			EfficiencyPercent: round(e.EfficiencyPercent, 1),
		}
	}
	return out
}
