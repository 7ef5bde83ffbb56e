package model

import "time"

// PriceBreakdown is the cost composition of one quote. Values are unrounded.
//
// @Description Cost components of a quote in the quote currency
type PriceBreakdown struct {
	Material   float64 `json:"material" bson:"material" example:"0.276"`
	Processing float64 `json:"processing" bson:"processing" example:"71250"`
	Printing   float64 `json:"printing" bson:"printing" example:"0"`
	Setup      float64 `json:"setup" bson:"setup" example:"0"`
	Subtotal   float64 `json:"subtotal" bson:"subtotal" example:"71250.276"`
	Discount   float64 `json:"discount" bson:"discount" example:"3562.51"`
	Delivery   float64 `json:"delivery" bson:"delivery" example:"1500.16"`
	Total      float64 `json:"total" bson:"total" example:"69187.92"`
} // @name PriceBreakdown

// QuoteResult is the full outcome of pricing one OrderRequest.
//
// @Description Price breakdown with unit price, validity and lead time
type QuoteResult struct {
	Breakdown        PriceBreakdown `json:"breakdown" bson:"breakdown"`
	Quantity         int            `json:"quantity" bson:"quantity" example:"5000"`
	UnitPrice        float64        `json:"unitPrice" bson:"unit_price" example:"13.84"`
	Currency         string         `json:"currency" bson:"currency" example:"JPY"`
	DiscountRate     float64        `json:"discountRate" bson:"discount_rate" example:"0.05"`
	ValidUntil       time.Time      `json:"validUntil" bson:"valid_until"`
	LeadTimeDays     int            `json:"leadTimeDays" bson:"lead_time_days" example:"14"`
	MinOrderQuantity int            `json:"minOrderQuantity" bson:"min_order_quantity" example:"100"`
} // @name QuoteResult
