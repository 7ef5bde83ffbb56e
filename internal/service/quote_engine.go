package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"slices"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/service/cache"
)

// QuoteCalculator prices one order request.
type QuoteCalculator interface {
	Calculate(req model.OrderRequest) (model.QuoteResult, error)
}

// EngineOption configures a QuoteEngine.
type EngineOption func(*QuoteEngine)

// QuoteEngine computes price breakdowns from an immutable cost model.
// Calculate is safe for concurrent use.
type QuoteEngine struct {
	costs  *model.CostModel
	clock  func() time.Time
	cache  cache.Cache
	shared cache.Cache
	// keyPrefix scopes cache keys to the cost model, so a shared cache never
	// serves prices computed from other tables.
	keyPrefix string
}

// NewQuoteEngine creates an engine over the given cost model.
func NewQuoteEngine(costs *model.CostModel, opts ...EngineOption) *QuoteEngine {
	e := &QuoteEngine{costs: costs, clock: time.Now, keyPrefix: CostModelDigest(costs) + ":"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithClock overrides the clock used for validUntil.
func WithClock(clock func() time.Time) EngineOption {
	return func(e *QuoteEngine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithCache enables an in-process sharded LRU cache.
func WithCache(capacity int, ttl time.Duration, shards int) EngineOption {
	return func(e *QuoteEngine) {
		if capacity > 0 {
			e.cache = NewShardedCache(capacity, ttl, shards)
		}
	}
}

// WithCacheInterface injects the in-process cache.
func WithCacheInterface(c cache.Cache) EngineOption {
	return func(e *QuoteEngine) {
		e.cache = c
	}
}

// WithSharedCache adds a second cache level shared between instances.
func WithSharedCache(c cache.Cache) EngineOption {
	return func(e *QuoteEngine) {
		e.shared = c
	}
}

// CostModel returns the tables the engine prices with.
func (e *QuoteEngine) CostModel() *model.CostModel {
	return e.costs
}

// Cache returns the in-process cache, or nil.
func (e *QuoteEngine) Cache() cache.Cache {
	return e.cache
}

// InvalidateCache clears every cache level.
func (e *QuoteEngine) InvalidateCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
	if e.shared != nil {
		e.shared.Clear()
	}
}

// Stop releases cache resources.
func (e *QuoteEngine) Stop() {
	if e.cache != nil {
		e.cache.Stop()
	}
	if e.shared != nil {
		e.shared.Stop()
	}
}

// Calculate prices one request. It fails with MinimumQuantityNotMet before any
// cost is computed, and with an unknown-type error when the cost model has no
// entry for the package, material or printing type.
func (e *QuoteEngine) Calculate(req model.OrderRequest) (model.QuoteResult, error) {
	if req.Quantity < req.Product.MinOrderQuantity {
		return model.QuoteResult{}, model.NewQuoteError(model.KindMinimumQuantityNotMet,
			"quantity %d is below the minimum order quantity %d", req.Quantity, req.Product.MinOrderQuantity)
	}
	if req.Quantity <= 0 {
		return model.QuoteResult{}, model.NewQuoteError(model.KindInvalidQuantity, "quantity must be positive, got %d", req.Quantity)
	}

	if e.cache == nil && e.shared == nil {
		return e.compute(req)
	}

	key := e.cacheKey(req)
	if result, ok := e.lookup(key); ok {
		result.ValidUntil = e.costs.ValidUntil(e.clock())
		return result, nil
	}

	result, err := e.compute(req)
	if err != nil {
		return model.QuoteResult{}, err
	}
	if e.cache != nil {
		e.cache.Set(key, result)
	}
	if e.shared != nil {
		e.shared.Set(key, result)
	}
	return result, nil
}

func (e *QuoteEngine) lookup(key string) (model.QuoteResult, bool) {
	if e.cache != nil {
		if result, ok := e.cache.Get(key); ok {
			return result, true
		}
	}
	if e.shared != nil {
		if result, ok := e.shared.Get(key); ok {
			if e.cache != nil {
				e.cache.Set(key, result)
			}
			return result, true
		}
	}
	return model.QuoteResult{}, false
}

func (e *QuoteEngine) compute(req model.OrderRequest) (model.QuoteResult, error) {
	spec := req.Specification
	qty := float64(req.Quantity)

	material, err := e.costs.Material(spec.MaterialType)
	if err != nil {
		return model.QuoteResult{}, err
	}
	processingBase, err := e.costs.ProcessingBase(spec.PackageType)
	if err != nil {
		return model.QuoteResult{}, err
	}

	var b model.PriceBreakdown

	// Material cost is per single unit and is not multiplied by quantity, unlike
	// processing and printing. Existing prices depend on this; it stays until
	// product owners confirm the intended scaling.
	weightKg := spec.AreaM2() * spec.ThicknessM() * material.DensityKgM3
	b.Material = weightKg * material.CostPerKg

	b.Processing = processingBase * qty * e.costs.ProcessingMultiplier(req.Quantity)

	if req.Printing != nil {
		rate, err := e.costs.PrintingRate(req.Printing.Type)
		if err != nil {
			return model.QuoteResult{}, err
		}
		variable := float64(req.Printing.Colors*req.Printing.Sides()) * rate.PerColorPerUnit * qty
		b.Printing = rate.SetupFee + math.Max(variable, rate.MinCharge)
	}

	if req.Quantity < e.costs.Setup.SmallLotThreshold {
		b.Setup += e.costs.Setup.SmallLotFee
	}
	if req.Printing != nil && req.Printing.Type == model.PrintingGravure {
		b.Setup += e.costs.Setup.GravureSurcharge
	}

	b.Subtotal = b.Material + b.Processing + b.Printing + b.Setup

	discountRate := e.costs.DiscountRate(req.Quantity)
	b.Discount = b.Subtotal * discountRate

	b.Delivery = e.delivery(req, b.Material, material.CostPerKg)

	b.Total = b.Subtotal - b.Discount + b.Delivery

	return model.QuoteResult{
		Breakdown:        b,
		Quantity:         req.Quantity,
		UnitPrice:        b.Total / qty,
		Currency:         e.costs.Currency,
		DiscountRate:     discountRate,
		ValidUntil:       e.costs.ValidUntil(e.clock()),
		LeadTimeDays:     e.leadTime(req),
		MinOrderQuantity: req.Product.MinOrderQuantity,
	}, nil
}

// delivery estimates shipping from the per-unit weight recovered from the
// material cost. Orders whose material value reaches the destination's free
// threshold ship free.
func (e *QuoteEngine) delivery(req model.OrderRequest, materialCost, costPerKg float64) float64 {
	rate := e.costs.DeliveryRate(req.DeliveryLocation)
	if materialCost*float64(req.Quantity) >= rate.FreeThreshold {
		return 0
	}
	weightKg := 0.0
	if costPerKg > 0 {
		weightKg = materialCost / costPerKg
	}
	return math.Max(rate.Base+weightKg*rate.PerKg, rate.Base)
}

func (e *QuoteEngine) leadTime(req model.OrderRequest) int {
	rule := e.costs.LeadTime
	days := float64(req.Product.LeadTimeDays)
	if req.Urgency == model.UrgencyExpress {
		days = math.Max(days*rule.ExpressFactor, float64(rule.ExpressMinDays))
	}
	if req.Quantity > rule.LargeOrderThreshold {
		days += float64(rule.LargeOrderExtraDays)
	}
	return int(math.Ceil(days))
}

func (e *QuoteEngine) cacheKey(req model.OrderRequest) string {
	return e.keyPrefix + CacheKey(req)
}

// CostModelDigest returns a short fingerprint of the cost tables. Equal tables
// give equal digests whatever their source.
func CostModelDigest(costs *model.CostModel) string {
	data, _ := json.Marshal(costs)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// CacheKey digests the full order request. Special features are order-insensitive.
func CacheKey(req model.OrderRequest) string {
	if len(req.Specification.SpecialFeatures) > 1 {
		features := slices.Clone(req.Specification.SpecialFeatures)
		slices.Sort(features)
		req.Specification.SpecialFeatures = features
	}
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
