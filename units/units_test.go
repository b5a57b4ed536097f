package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
	"goflare.io/storefront/units"
)

func TestConversionFactorAndAreaPricing(t *testing.T) {
	product := &models.Product{
		ID:                  "p1",
		PricePerKg:          20,
		GramsPerSquareMeter: 250,
		MinKg:               1,
		AvailableKg:         100,
	}

	assert.InDelta(t, 0.25, units.ConversionFactor(product), 1e-12)
	assert.InDelta(t, 5.0, units.PricePerUnit(product, enum.UnitArea), 1e-12)
	assert.Equal(t, 20.0, units.PricePerUnit(product, enum.UnitWeight))
	assert.InDelta(t, 400.0, units.AvailableByUnit(product, enum.UnitArea), 1e-9)
	assert.Equal(t, 100.0, units.AvailableByUnit(product, enum.UnitWeight))
	assert.InDelta(t, 4.0, units.MinByUnit(product, enum.UnitArea), 1e-9)
	assert.Equal(t, 1.0, units.MinByUnit(product, enum.UnitWeight))
}

func TestConvertQuantityRoundTrip(t *testing.T) {
	product := &models.Product{GramsPerSquareMeter: 200}

	for _, q := range []float64{0.01, 0.5, 1, 3.5, 17.25, 1234.56} {
		area := units.ConvertQuantity(product, q, enum.UnitWeight, enum.UnitArea)
		back := units.ConvertQuantity(product, area, enum.UnitArea, enum.UnitWeight)
		assert.InDelta(t, q, back, 1e-9, "quantity %v", q)

		weight := units.ConvertQuantity(product, q, enum.UnitArea, enum.UnitWeight)
		again := units.ConvertQuantity(product, weight, enum.UnitWeight, enum.UnitArea)
		assert.InDelta(t, q, again, 1e-9, "quantity %v", q)
	}
}

func TestConvertQuantitySameUnitIsIdentity(t *testing.T) {
	product := &models.Product{GramsPerSquareMeter: 380}

	assert.Equal(t, 2.75, units.ConvertQuantity(product, 2.75, enum.UnitArea, enum.UnitArea))
	assert.Equal(t, 2.75, units.ConvertQuantity(product, 2.75, enum.UnitWeight, enum.UnitWeight))
	assert.InDelta(t, 10.0, units.ConvertQuantity(product, 3.8, enum.UnitWeight, enum.UnitArea), 1e-9)
}

func TestRebaseQuantityClampsToOrderableRange(t *testing.T) {
	product := &models.Product{GramsPerSquareMeter: 250, MinKg: 1, AvailableKg: 100}

	// 0.1 kg is 0.4 m², below the 4 m² minimum.
	assert.InDelta(t, 4.0, units.RebaseQuantity(product, 0.1, enum.UnitWeight, enum.UnitArea), 1e-9)
	// 200 kg is 800 m², above the 400 m² available.
	assert.InDelta(t, 400.0, units.RebaseQuantity(product, 200, enum.UnitWeight, enum.UnitArea), 1e-9)
	// 20 m² is 5 kg, within range.
	assert.InDelta(t, 5.0, units.RebaseQuantity(product, 20, enum.UnitArea, enum.UnitWeight), 1e-9)
}

func TestLabelAndOther(t *testing.T) {
	assert.Equal(t, "m²", units.Label(enum.UnitArea))
	assert.Equal(t, "kg", units.Label(enum.UnitWeight))
	assert.Equal(t, enum.UnitWeight, units.Other(enum.UnitArea))
	assert.Equal(t, enum.UnitArea, units.Other(enum.UnitWeight))
}
