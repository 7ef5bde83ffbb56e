// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model. Domain rules are left to
// the validator so every rejection carries an error kind; binding tags only
// guard the envelope.
package dto

import (
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// BaseParams is everything a comparison shares across quantities.
//
// @Description Package design and options shared by every quantity
type BaseParams struct {
	// Product overrides the catalog entry of the package type (optional).
	Product          *model.ProductRef          `json:"product,omitempty"`
	Specification    model.PackageSpecification `json:"specification"`
	Printing         *model.PrintingOption      `json:"printing,omitempty"`
	DeliveryLocation model.DeliveryLocation     `json:"deliveryLocation,omitempty" example:"domestic"`
	Urgency          model.Urgency              `json:"urgency,omitempty" example:"standard" enums:"standard,express"`
} // @name BaseParams

// Normalize applies the defaults for omitted options.
func (p *BaseParams) Normalize() {
	if p.DeliveryLocation == "" {
		p.DeliveryLocation = model.DeliveryDomestic
	}
	if p.Urgency == "" {
		p.Urgency = model.UrgencyStandard
	}
}

// Order builds the order request for one quantity.
func (p BaseParams) Order(product model.ProductRef, quantity int) model.OrderRequest {
	return model.OrderRequest{
		Product:          product,
		Specification:    p.Specification,
		Quantity:         quantity,
		Printing:         p.Printing,
		DeliveryLocation: p.DeliveryLocation,
		Urgency:          p.Urgency,
	}
}

// QuoteRequest is the body of POST /api/v1/quotes.
//
// @Description Request to price one package design at one quantity
type QuoteRequest struct {
	BaseParams
	Quantity int `json:"quantity" example:"5000"`
} // @name QuoteRequest

// ValidateRequest is the body of POST /api/v1/quotes/validate.
//
// @Description Request to list every validation issue of a design
type ValidateRequest struct {
	BaseParams
	Quantity int `json:"quantity" example:"5000"`
	// Profile selects the quantity bounds: single (100..100000) or comparison (500..1000000).
	Profile string `json:"profile,omitempty" example:"single" enums:"single,comparison"`
} // @name ValidateRequest

// CompareRequest is the body of POST /api/v1/comparisons.
//
// @Description Request to price one design at up to 10 quantities
type CompareRequest struct {
	BaseParams BaseParams `json:"baseParams"`
	Quantities []int      `json:"quantities" example:"1000,5000,10000"`
	// SkipAnalysis omits price breaks, economies of scale and trend.
	SkipAnalysis bool `json:"skipAnalysis,omitempty"`
} // @name CompareRequest

// CreateShareRequest is the body of POST /api/v1/shares. The comparison is
// recomputed on the server from the submitted parameters.
//
// @Description Request to share a comparison behind an opaque link
type CreateShareRequest struct {
	Comparison CompareRequest `json:"comparison"`
	Title      string         `json:"title,omitempty" binding:"max=200" example:"Stand-up pouch, spring campaign"`
	Password   string         `json:"password,omitempty" binding:"omitempty,min=4,max=72"`
	// ExpiresInHours defaults to 168 (7 days); the maximum is 720 (30 days).
	ExpiresInHours int `json:"expiresInHours,omitempty" binding:"omitempty,min=1,max=720" example:"168"`
} // @name CreateShareRequest

// ExpiresIn converts ExpiresInHours, zero meaning the default.
func (r CreateShareRequest) ExpiresIn() time.Duration {
	return time.Duration(r.ExpiresInHours) * time.Hour
}

// UnlockShareRequest is the body of POST /api/v1/shares/{id}/unlock.
//
// @Description Password for a protected share
type UnlockShareRequest struct {
	Password string `json:"password" binding:"required"`
} // @name UnlockShareRequest

// CreateCostModelRequest is the body of POST /api/admin/cost-models.
//
// @Description New cost model version
type CreateCostModelRequest struct {
	Model model.CostModel `json:"model"`
	Note  string          `json:"note,omitempty" binding:"max=500" example:"2026 resin price update"`
} // @name CreateCostModelRequest
