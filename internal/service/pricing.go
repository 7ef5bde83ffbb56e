// Package service contains the pricing logic of the quote service: validation,
// the quote engine, the multi-quantity comparator and the stores built around them.
package service

import (
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/service/cache"
)

const defaultLeadTimeDays = 14

// Pricer is the pricing API consumed by the transport layer.
type Pricer interface {
	Quote(req model.OrderRequest) (model.QuoteResult, error)
	Validate(spec model.PackageSpecification, quantity int, product model.ProductRef, profile Profile) model.Issues
	Compare(spec model.PackageSpecification, quantities []int, opts ComparisonOptions) (model.MultiQuantityComparison, error)
	ResolveProduct(packageType model.PackageType, product *model.ProductRef) model.ProductRef
	CostModel() *model.CostModel
	InvalidateCache()
	CacheMetrics() (cache.Metrics, bool)
}

// PricingService validates requests and delegates to the engine and comparator.
type PricingService struct {
	costs      *model.CostModel
	validator  *Validator
	engine     *QuoteEngine
	comparator *Comparator
}

// NewPricingService wires a validator, engine and comparator over one cost model.
func NewPricingService(costs *model.CostModel, opts ...EngineOption) *PricingService {
	validator := NewValidator(costs)
	engine := NewQuoteEngine(costs, opts...)
	return &PricingService{
		costs:      costs,
		validator:  validator,
		engine:     engine,
		comparator: NewComparator(costs, validator, engine),
	}
}

// Quote validates with the single-calculation profile, failing on the first
// blocking issue, and prices the request.
func (s *PricingService) Quote(req model.OrderRequest) (model.QuoteResult, error) {
	if err := s.validator.ValidateSingle(req); err != nil {
		return model.QuoteResult{}, err
	}
	return s.engine.Calculate(req)
}

// Validate returns every issue for a specification and quantity.
func (s *PricingService) Validate(spec model.PackageSpecification, quantity int, product model.ProductRef, profile Profile) model.Issues {
	return s.validator.Validate(spec, quantity, product, profile)
}

// Compare prices a specification at several quantities.
func (s *PricingService) Compare(spec model.PackageSpecification, quantities []int, opts ComparisonOptions) (model.MultiQuantityComparison, error) {
	return s.comparator.CompareQuantities(spec, quantities, opts)
}

// ResolveProduct returns the catalog entry of the package type, overlaid with
// the caller's product. A caller may raise the minimum order quantity but never
// lower it below the catalog's, and a missing lead time keeps the catalog's.
func (s *PricingService) ResolveProduct(packageType model.PackageType, product *model.ProductRef) model.ProductRef {
	catalog, ok := s.costs.Product(packageType)
	if !ok {
		catalog = model.ProductRef{
			Category:         string(packageType),
			MinOrderQuantity: SingleProfile.MinQuantity,
			LeadTimeDays:     defaultLeadTimeDays,
		}
	}
	if product == nil {
		return catalog
	}

	p := *product
	if p.Category == "" {
		p.Category = catalog.Category
	}
	if p.ID == "" {
		p.ID = catalog.ID
	}
	p.MinOrderQuantity = max(p.MinOrderQuantity, catalog.MinOrderQuantity)
	if p.LeadTimeDays <= 0 {
		p.LeadTimeDays = catalog.LeadTimeDays
	}
	return p
}

// CostModel returns the active cost model.
func (s *PricingService) CostModel() *model.CostModel {
	return s.costs
}

// InvalidateCache clears cached quotes.
func (s *PricingService) InvalidateCache() {
	s.engine.InvalidateCache()
}

// CacheMetrics reports the in-process cache metrics when the cache supports it.
func (s *PricingService) CacheMetrics() (cache.Metrics, bool) {
	if c, ok := s.engine.Cache().(cache.CacheWithMetrics); ok {
		return c.Metrics(), true
	}
	return cache.Metrics{}, false
}

// Stop releases cache resources.
func (s *PricingService) Stop() {
	s.engine.Stop()
}
