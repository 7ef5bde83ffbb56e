// Package model defines the core domain entities for the quote service.
package model

import (
	"fmt"
	"strings"
)

// PackageType is the structural family of a pouch or bag.
type PackageType string

const (
	PackageFlat3Side   PackageType = "flat_3_side"
	PackageStandUp     PackageType = "stand_up"
	PackageGusset      PackageType = "gusset"
	PackageBox         PackageType = "box"
	PackageFlatWithZip PackageType = "flat_with_zip"
	PackageSpecial     PackageType = "special"
	PackageSoftPouch   PackageType = "soft_pouch"
	PackageSpoutPouch  PackageType = "spout_pouch"
	PackageRollFilm    PackageType = "roll_film"
)

// PackageTypes lists every package type the cost model must price.
var PackageTypes = []PackageType{
	PackageFlat3Side,
	PackageStandUp,
	PackageGusset,
	PackageBox,
	PackageFlatWithZip,
	PackageSpecial,
	PackageSoftPouch,
	PackageSpoutPouch,
	PackageRollFilm,
}

// MaterialType is the film or laminate a package is made of.
type MaterialType string

const (
	MaterialPE            MaterialType = "PE"
	MaterialPP            MaterialType = "PP"
	MaterialPET           MaterialType = "PET"
	MaterialAluminum      MaterialType = "ALUMINUM"
	MaterialPaperLaminate MaterialType = "PAPER_LAMINATE"
)

// MaterialTypes lists every material the cost model must price.
var MaterialTypes = []MaterialType{
	MaterialPE,
	MaterialPP,
	MaterialPET,
	MaterialAluminum,
	MaterialPaperLaminate,
}

// PrintingType is the press technology used for printing.
type PrintingType string

const (
	PrintingDigital PrintingType = "digital"
	PrintingGravure PrintingType = "gravure"
)

// PrintingTypes lists every printing technology the cost model must price.
var PrintingTypes = []PrintingType{PrintingDigital, PrintingGravure}

// DeliveryLocation selects the delivery rate table. Values other than the two
// known destinations are kept as free text and priced as domestic.
type DeliveryLocation string

const (
	DeliveryDomestic      DeliveryLocation = "domestic"
	DeliveryInternational DeliveryLocation = "international"
)

// RateKey returns the delivery table the location is priced with.
func (d DeliveryLocation) RateKey() DeliveryLocation {
	if strings.EqualFold(strings.TrimSpace(string(d)), string(DeliveryInternational)) {
		return DeliveryInternational
	}
	return DeliveryDomestic
}

// Urgency controls lead time compression.
type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyExpress  Urgency = "express"
)

// Dimension and option bounds shared by every validation profile.
const (
	MinDimensionMm      = 10.0
	MaxDimensionMm      = 1000.0
	MaxThicknessMicrons = 500.0
	MaxPrintingColors   = 8
	MinPrintingColors   = 1
)

// PackageSpecification describes one physical package design.
//
// @Description Physical package design shared by every quantity in a quote
type PackageSpecification struct {
	PackageType      PackageType  `json:"packageType" yaml:"packageType" bson:"package_type" example:"flat_3_side"`
	WidthMm          float64      `json:"widthMm" yaml:"widthMm" bson:"width_mm" example:"100"`
	HeightMm         float64      `json:"heightMm" yaml:"heightMm" bson:"height_mm" example:"150"`
	DepthMm          float64      `json:"depthMm,omitempty" yaml:"depthMm,omitempty" bson:"depth_mm,omitempty" example:"0"`
	ThicknessMicrons float64      `json:"thicknessMicrons" yaml:"thicknessMicrons" bson:"thickness_microns" example:"80"`
	MaterialType     MaterialType `json:"materialType" yaml:"materialType" bson:"material_type" example:"PE"`
	PrintingColors   int          `json:"printingColors" yaml:"printingColors" bson:"printing_colors" example:"0"`
	SpecialFeatures  []string     `json:"specialFeatures,omitempty" yaml:"specialFeatures,omitempty" bson:"special_features,omitempty"`
} // @name PackageSpecification

// AreaM2 returns the printable face area in square meters.
func (s PackageSpecification) AreaM2() float64 {
	return (s.WidthMm * s.HeightMm) / 1_000_000
}

// ThicknessM returns the film thickness in meters.
func (s PackageSpecification) ThicknessM() float64 {
	return s.ThicknessMicrons / 1_000_000
}

// PrintingOption describes the press run attached to a quote.
//
// @Description Printing technology, colour count and sides
type PrintingOption struct {
	Type        PrintingType `json:"type" yaml:"type" bson:"type" example:"digital"`
	Colors      int          `json:"colors" yaml:"colors" bson:"colors" example:"4"`
	DoubleSided bool         `json:"doubleSided" yaml:"doubleSided" bson:"double_sided" example:"false"`
} // @name PrintingOption

// Sides returns how many faces are printed.
func (p PrintingOption) Sides() int {
	if p.DoubleSided {
		return 2
	}
	return 1
}

// ProductRef is the read-only catalog entry a quote is priced against.
//
// @Description Catalog entry with ordering constraints
type ProductRef struct {
	ID               string `json:"id,omitempty" yaml:"id,omitempty" bson:"id,omitempty" example:"flat_3_side"`
	Category         string `json:"category" yaml:"category" bson:"category" example:"flat_3_side"`
	MinOrderQuantity int    `json:"minOrderQuantity" yaml:"minOrderQuantity" bson:"min_order_quantity" example:"100"`
	LeadTimeDays     int    `json:"leadTimeDays" yaml:"leadTimeDays" bson:"lead_time_days" example:"14"`
} // @name ProductRef

// OrderRequest is the unit of calculation.
//
// @Description One package design priced at one quantity
type OrderRequest struct {
	Product          ProductRef           `json:"product"`
	Specification    PackageSpecification `json:"specification"`
	Quantity         int                  `json:"quantity" example:"5000"`
	Printing         *PrintingOption      `json:"printing,omitempty"`
	DeliveryLocation DeliveryLocation     `json:"deliveryLocation" example:"domestic"`
	Urgency          Urgency              `json:"urgency" example:"standard"`
} // @name OrderRequest

// WithQuantity returns a copy of the request priced at another quantity.
func (r OrderRequest) WithQuantity(quantity int) OrderRequest {
	r.Quantity = quantity
	return r
}

// String renders a short human description used in logs.
func (r OrderRequest) String() string {
	return fmt.Sprintf("%s %gx%gmm %s x%d", r.Specification.PackageType,
		r.Specification.WidthMm, r.Specification.HeightMm, r.Specification.MaterialType, r.Quantity)
}
