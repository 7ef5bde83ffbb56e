package model

import (
	"errors"
	"fmt"
	"time"
)

// MaterialRate prices a material by weight.
type MaterialRate struct {
	CostPerKg   float64 `json:"costPerKg" yaml:"costPerKg" bson:"cost_per_kg"`
	DensityKgM3 float64 `json:"densityKgM3" yaml:"densityKgM3" bson:"density_kg_m3"`
}

// PrintingRate prices one printing technology.
type PrintingRate struct {
	SetupFee        float64 `json:"setupFee" yaml:"setupFee" bson:"setup_fee"`
	PerColorPerUnit float64 `json:"perColorPerUnit" yaml:"perColorPerUnit" bson:"per_color_per_unit"`
	MinCharge       float64 `json:"minCharge" yaml:"minCharge" bson:"min_charge"`
}

// DeliveryRate prices shipping to one destination.
type DeliveryRate struct {
	Base          float64 `json:"base" yaml:"base" bson:"base"`
	PerKg         float64 `json:"perKg" yaml:"perKg" bson:"per_kg"`
	FreeThreshold float64 `json:"freeThreshold" yaml:"freeThreshold" bson:"free_threshold"`
}

// Tier is a step applied from MinQuantity upwards (inclusive).
type Tier struct {
	MinQuantity int     `json:"minQuantity" yaml:"minQuantity" bson:"min_quantity"`
	Rate        float64 `json:"rate" yaml:"rate" bson:"rate"`
	Label       string  `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
}

// SetupRule prices fixed setup work.
type SetupRule struct {
	SmallLotThreshold int     `json:"smallLotThreshold" yaml:"smallLotThreshold" bson:"small_lot_threshold"`
	SmallLotFee       float64 `json:"smallLotFee" yaml:"smallLotFee" bson:"small_lot_fee"`
	GravureSurcharge  float64 `json:"gravureSurcharge" yaml:"gravureSurcharge" bson:"gravure_surcharge"`
}

// LeadTimeRule adjusts the catalog lead time.
type LeadTimeRule struct {
	ExpressFactor       float64 `json:"expressFactor" yaml:"expressFactor" bson:"express_factor"`
	ExpressMinDays      int     `json:"expressMinDays" yaml:"expressMinDays" bson:"express_min_days"`
	LargeOrderThreshold int     `json:"largeOrderThreshold" yaml:"largeOrderThreshold" bson:"large_order_threshold"`
	LargeOrderExtraDays int     `json:"largeOrderExtraDays" yaml:"largeOrderExtraDays" bson:"large_order_extra_days"`
}

// SizeLimit is the largest package a type can be made in. A zero MaxDepthMm
// means the type has no depth dimension.
type SizeLimit struct {
	MaxWidthMm  float64 `json:"maxWidthMm" yaml:"maxWidthMm" bson:"max_width_mm"`
	MaxHeightMm float64 `json:"maxHeightMm" yaml:"maxHeightMm" bson:"max_height_mm"`
	MaxDepthMm  float64 `json:"maxDepthMm" yaml:"maxDepthMm" bson:"max_depth_mm"`
}

// Incompatibility is a package type that cannot be made from a material.
type Incompatibility struct {
	PackageType  PackageType  `json:"packageType" yaml:"packageType" bson:"package_type"`
	MaterialType MaterialType `json:"materialType" yaml:"materialType" bson:"material_type"`
	Reason       string       `json:"reason" yaml:"reason" bson:"reason"`
}

// CostModel holds every table the pricing engine reads. It is loaded once at
// startup and never mutated afterwards.
//
// @Description Cost tables used to price quotes
type CostModel struct {
	Currency              string                            `json:"currency" yaml:"currency" bson:"currency"`
	ValidityDays          int                               `json:"validityDays" yaml:"validityDays" bson:"validity_days"`
	TaxRate               float64                           `json:"taxRate" yaml:"taxRate" bson:"tax_rate"`
	Materials             map[MaterialType]MaterialRate     `json:"materials" yaml:"materials" bson:"materials"`
	Processing            map[PackageType]float64           `json:"processing" yaml:"processing" bson:"processing"`
	ProcessingMultipliers []Tier                            `json:"processingMultipliers" yaml:"processingMultipliers" bson:"processing_multipliers"`
	Printing              map[PrintingType]PrintingRate     `json:"printing" yaml:"printing" bson:"printing"`
	Setup                 SetupRule                         `json:"setup" yaml:"setup" bson:"setup"`
	Discounts             []Tier                            `json:"discounts" yaml:"discounts" bson:"discounts"`
	Delivery              map[DeliveryLocation]DeliveryRate `json:"delivery" yaml:"delivery" bson:"delivery"`
	LeadTime              LeadTimeRule                      `json:"leadTime" yaml:"leadTime" bson:"lead_time"`
	SizeLimits            map[PackageType]SizeLimit         `json:"sizeLimits" yaml:"sizeLimits" bson:"size_limits"`
	Incompatible          []Incompatibility                 `json:"incompatible" yaml:"incompatible" bson:"incompatible"`
	Products              map[PackageType]ProductRef        `json:"products" yaml:"products" bson:"products"`
} // @name CostModel

// DefaultCostModel returns the built-in tables, priced in yen.
func DefaultCostModel() *CostModel {
	return &CostModel{
		Currency:     "JPY",
		ValidityDays: 30,
		TaxRate:      0.10,
		Materials: map[MaterialType]MaterialRate{
			MaterialPE:            {CostPerKg: 250, DensityKgM3: 920},
			MaterialPP:            {CostPerKg: 300, DensityKgM3: 900},
			MaterialPET:           {CostPerKg: 450, DensityKgM3: 1380},
			MaterialAluminum:      {CostPerKg: 1200, DensityKgM3: 2700},
			MaterialPaperLaminate: {CostPerKg: 380, DensityKgM3: 800},
		},
		Processing: map[PackageType]float64{
			PackageFlat3Side:   15,
			PackageStandUp:     18,
			PackageGusset:      20,
			PackageBox:         22,
			PackageFlatWithZip: 20,
			PackageSpecial:     25,
			PackageSoftPouch:   17,
			PackageSpoutPouch:  28,
			PackageRollFilm:    8,
		},
		ProcessingMultipliers: []Tier{
			{MinQuantity: 10000, Rate: 0.90},
			{MinQuantity: 5000, Rate: 0.95},
		},
		Printing: map[PrintingType]PrintingRate{
			PrintingDigital: {SetupFee: 10000, PerColorPerUnit: 5, MinCharge: 5000},
			PrintingGravure: {SetupFee: 50000, PerColorPerUnit: 2, MinCharge: 20000},
		},
		Setup: SetupRule{
			SmallLotThreshold: 1000,
			SmallLotFee:       10000,
			GravureSurcharge:  30000,
		},
		Discounts: []Tier{
			{MinQuantity: 50000, Rate: 0.20, Label: "large_lot"},
			{MinQuantity: 20000, Rate: 0.15, Label: "medium_lot"},
			{MinQuantity: 10000, Rate: 0.10, Label: "standard_lot"},
			{MinQuantity: 5000, Rate: 0.05, Label: "small_lot"},
		},
		Delivery: map[DeliveryLocation]DeliveryRate{
			DeliveryDomestic:      {Base: 1500, PerKg: 150, FreeThreshold: 50000},
			DeliveryInternational: {Base: 5000, PerKg: 500, FreeThreshold: 200000},
		},
		LeadTime: LeadTimeRule{
			ExpressFactor:       0.6,
			ExpressMinDays:      5,
			LargeOrderThreshold: 10000,
			LargeOrderExtraDays: 3,
		},
		SizeLimits: map[PackageType]SizeLimit{
			PackageFlat3Side:   {MaxWidthMm: 600, MaxHeightMm: 800},
			PackageStandUp:     {MaxWidthMm: 400, MaxHeightMm: 600, MaxDepthMm: 200},
			PackageGusset:      {MaxWidthMm: 400, MaxHeightMm: 700, MaxDepthMm: 200},
			PackageBox:         {MaxWidthMm: 300, MaxHeightMm: 400, MaxDepthMm: 150},
			PackageFlatWithZip: {MaxWidthMm: 500, MaxHeightMm: 700},
			PackageSpecial:     {MaxWidthMm: 1000, MaxHeightMm: 1000, MaxDepthMm: 300},
			PackageSoftPouch:   {MaxWidthMm: 400, MaxHeightMm: 500, MaxDepthMm: 100},
			PackageSpoutPouch:  {MaxWidthMm: 350, MaxHeightMm: 500, MaxDepthMm: 100},
			PackageRollFilm:    {MaxWidthMm: 1000, MaxHeightMm: 1000},
		},
		Incompatible: []Incompatibility{
			{PackageType: PackageSpoutPouch, MaterialType: MaterialPaperLaminate, Reason: "spout fitments cannot be sealed to a paper laminate"},
			{PackageType: PackageRollFilm, MaterialType: MaterialAluminum, Reason: "rigid foil does not run on form-fill-seal lines"},
			{PackageType: PackageSoftPouch, MaterialType: MaterialAluminum, Reason: "soft pouches require a flexible film"},
		},
		Products: map[PackageType]ProductRef{
			PackageFlat3Side:   {ID: "flat_3_side", Category: string(PackageFlat3Side), MinOrderQuantity: 100, LeadTimeDays: 14},
			PackageStandUp:     {ID: "stand_up", Category: string(PackageStandUp), MinOrderQuantity: 100, LeadTimeDays: 14},
			PackageGusset:      {ID: "gusset", Category: string(PackageGusset), MinOrderQuantity: 100, LeadTimeDays: 14},
			PackageBox:         {ID: "box", Category: string(PackageBox), MinOrderQuantity: 500, LeadTimeDays: 18},
			PackageFlatWithZip: {ID: "flat_with_zip", Category: string(PackageFlatWithZip), MinOrderQuantity: 100, LeadTimeDays: 14},
			PackageSpecial:     {ID: "special", Category: string(PackageSpecial), MinOrderQuantity: 1000, LeadTimeDays: 21},
			PackageSoftPouch:   {ID: "soft_pouch", Category: string(PackageSoftPouch), MinOrderQuantity: 100, LeadTimeDays: 14},
			PackageSpoutPouch:  {ID: "spout_pouch", Category: string(PackageSpoutPouch), MinOrderQuantity: 500, LeadTimeDays: 21},
			PackageRollFilm:    {ID: "roll_film", Category: string(PackageRollFilm), MinOrderQuantity: 1000, LeadTimeDays: 10},
		},
	}
}

// Material returns the weight pricing of a material.
func (m *CostModel) Material(t MaterialType) (MaterialRate, error) {
	rate, ok := m.Materials[t]
	if !ok {
		return MaterialRate{}, NewQuoteError(KindUnknownMaterialType, "material type %q has no cost model entry", t)
	}
	return rate, nil
}

// ProcessingBase returns the per-unit processing cost of a package type.
func (m *CostModel) ProcessingBase(t PackageType) (float64, error) {
	cost, ok := m.Processing[t]
	if !ok {
		return 0, NewQuoteError(KindUnknownPackageType, "package type %q has no cost model entry", t)
	}
	return cost, nil
}

// PrintingRate returns the pricing of a printing technology.
func (m *CostModel) PrintingRate(t PrintingType) (PrintingRate, error) {
	rate, ok := m.Printing[t]
	if !ok {
		return PrintingRate{}, NewQuoteError(KindUnknownPrintingType, "printing type %q has no cost model entry", t)
	}
	return rate, nil
}

// DeliveryRate returns the rate table a location is priced with.
func (m *CostModel) DeliveryRate(loc DeliveryLocation) DeliveryRate {
	return m.Delivery[loc.RateKey()]
}

// ProcessingMultiplier returns the step multiplier for a quantity, 1 below every tier.
func (m *CostModel) ProcessingMultiplier(quantity int) float64 {
	if t, ok := tierFor(m.ProcessingMultipliers, quantity); ok {
		return t.Rate
	}
	return 1.0
}

// DiscountTier returns the flat-rate discount tier a quantity falls in.
func (m *CostModel) DiscountTier(quantity int) (Tier, bool) {
	return tierFor(m.Discounts, quantity)
}

// DiscountRate returns the discount rate for a quantity, 0 below every tier.
func (m *CostModel) DiscountRate(quantity int) float64 {
	if t, ok := tierFor(m.Discounts, quantity); ok {
		return t.Rate
	}
	return 0
}

// SizeLimit returns the size ceiling of a package type.
func (m *CostModel) SizeLimit(t PackageType) (SizeLimit, bool) {
	l, ok := m.SizeLimits[t]
	return l, ok
}

// Incompatibility returns the reason a package type cannot use a material.
func (m *CostModel) Incompatibility(p PackageType, mt MaterialType) (Incompatibility, bool) {
	for _, inc := range m.Incompatible {
		if inc.PackageType == p && inc.MaterialType == mt {
			return inc, true
		}
	}
	return Incompatibility{}, false
}

// Product returns the catalog entry for a package type.
func (m *CostModel) Product(t PackageType) (ProductRef, bool) {
	p, ok := m.Products[t]
	return p, ok
}

// ValidUntil returns the expiry of a quote issued at now.
func (m *CostModel) ValidUntil(now time.Time) time.Time {
	return now.AddDate(0, 0, m.ValidityDays)
}

// Validate checks that the model prices every closed enum value.
func (m *CostModel) Validate() error {
	var errs []error
	for _, p := range PackageTypes {
		if _, ok := m.Processing[p]; !ok {
			errs = append(errs, fmt.Errorf("processing: missing package type %s", p))
		}
		if _, ok := m.SizeLimits[p]; !ok {
			errs = append(errs, fmt.Errorf("sizeLimits: missing package type %s", p))
		}
	}
	for _, mt := range MaterialTypes {
		rate, ok := m.Materials[mt]
		if !ok {
			errs = append(errs, fmt.Errorf("materials: missing material %s", mt))
			continue
		}
		if rate.CostPerKg <= 0 || rate.DensityKgM3 <= 0 {
			errs = append(errs, fmt.Errorf("materials: %s must have a positive cost and density", mt))
		}
	}
	for _, pt := range PrintingTypes {
		if _, ok := m.Printing[pt]; !ok {
			errs = append(errs, fmt.Errorf("printing: missing printing type %s", pt))
		}
	}
	for _, loc := range []DeliveryLocation{DeliveryDomestic, DeliveryInternational} {
		if _, ok := m.Delivery[loc]; !ok {
			errs = append(errs, fmt.Errorf("delivery: missing destination %s", loc))
		}
	}
	if err := validateTiers("discounts", m.Discounts, 0, 1); err != nil {
		errs = append(errs, err)
	}
	if err := validateTiers("processingMultipliers", m.ProcessingMultipliers, 0, 2); err != nil {
		errs = append(errs, err)
	}
	if m.ValidityDays <= 0 {
		errs = append(errs, errors.New("validityDays must be positive"))
	}
	if m.Currency == "" {
		errs = append(errs, errors.New("currency is required"))
	}
	return errors.Join(errs...)
}

func validateTiers(name string, tiers []Tier, minRate, maxRate float64) error {
	seen := make(map[int]struct{}, len(tiers))
	for _, t := range tiers {
		if t.MinQuantity <= 0 {
			return fmt.Errorf("%s: minQuantity must be positive", name)
		}
		if _, dup := seen[t.MinQuantity]; dup {
			return fmt.Errorf("%s: duplicate minQuantity %d", name, t.MinQuantity)
		}
		seen[t.MinQuantity] = struct{}{}
		if t.Rate < minRate || t.Rate >= maxRate {
			return fmt.Errorf("%s: rate %v out of range for minQuantity %d", name, t.Rate, t.MinQuantity)
		}
	}
	return nil
}

// tierFor returns the tier with the highest MinQuantity not above quantity.
func tierFor(tiers []Tier, quantity int) (Tier, bool) {
	var best Tier
	found := false
	for _, t := range tiers {
		if quantity >= t.MinQuantity && (!found || t.MinQuantity > best.MinQuantity) {
			best = t
			found = true
		}
	}
	return best, found
}
