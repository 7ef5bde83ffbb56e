package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPackageSpecification_Units(t *testing.T) {
	spec := PackageSpecification{WidthMm: 100, HeightMm: 150, ThicknessMicrons: 80}
	assert.InDelta(t, 0.015, spec.AreaM2(), 1e-12)
	assert.InDelta(t, 0.00008, spec.ThicknessM(), 1e-12)
}

func TestDeliveryLocation_RateKey(t *testing.T) {
	tests := map[DeliveryLocation]DeliveryLocation{
		"":                  DeliveryDomestic,
		"domestic":          DeliveryDomestic,
		"international":     DeliveryInternational,
		"INTERNATIONAL":     DeliveryInternational,
		"Tokyo, Minato-ku":  DeliveryDomestic,
		"international air": DeliveryDomestic,
	}
	for loc, want := range tests {
		assert.Equal(t, want, loc.RateKey(), "location %q", loc)
	}
}

func TestOrderRequest(t *testing.T) {
	r := OrderRequest{
		Specification: PackageSpecification{PackageType: PackageStandUp, WidthMm: 140, HeightMm: 200, MaterialType: MaterialPET},
		Quantity:      1000,
	}
	other := r.WithQuantity(5000)

	assert.Equal(t, 1000, r.Quantity)
	assert.Equal(t, 5000, other.Quantity)
	assert.Equal(t, "stand_up 140x200mm PET x5000", other.String())
	assert.Equal(t, 1, PrintingOption{}.Sides())
	assert.Equal(t, 2, PrintingOption{DoubleSided: true}.Sides())
}

func TestComparisonShare(t *testing.T) {
	now := time.Now()
	s := &ComparisonShare{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, s.Protected())
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Hour)))

	s.PasswordHash = "$2a$10$hash"
	assert.True(t, s.Protected())
}
