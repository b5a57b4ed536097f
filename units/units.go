// Package units converts product quantities, prices and limits between
// weight (kg) and area (m²).
//
// A product's area density in grams per square meter gives the conversion
// factor: kilograms per square meter = gsm / 1000. The factor is assumed to
// be positive; a non-positive density is a catalog data error and yields
// meaningless results rather than a failure.
package units

import (
	"math"

	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
)

// ConversionFactor returns the weight in kg of one m² of the product.
func ConversionFactor(product *models.Product) float64 {
	return product.GramsPerSquareMeter / 1000
}

// PricePerUnit returns the product price per kg or per m².
func PricePerUnit(product *models.Product, unit enum.Unit) float64 {
	if unit == enum.UnitWeight {
		return product.PricePerKg
	}
	return product.PricePerKg * ConversionFactor(product)
}

// AvailableByUnit returns the available stock expressed in unit.
func AvailableByUnit(product *models.Product, unit enum.Unit) float64 {
	if unit == enum.UnitWeight {
		return product.AvailableKg
	}
	return product.AvailableKg / ConversionFactor(product)
}

// MinByUnit returns the minimum order quantity expressed in unit.
func MinByUnit(product *models.Product, unit enum.Unit) float64 {
	if unit == enum.UnitWeight {
		return product.MinKg
	}
	return product.MinKg / ConversionFactor(product)
}

// ConvertQuantity converts quantity from one unit to the other. Converting
// back with the units swapped yields the original quantity up to floating
// point error.
func ConvertQuantity(product *models.Product, quantity float64, from, to enum.Unit) float64 {
	if from == to {
		return quantity
	}
	if from == enum.UnitWeight && to == enum.UnitArea {
		return quantity / ConversionFactor(product)
	}
	return quantity * ConversionFactor(product)
}

// RebaseQuantity converts quantity into the new unit and clamps it to the
// product's orderable range in that unit. Used when a shopper switches unit
// while a quantity is being edited.
func RebaseQuantity(product *models.Product, quantity float64, from, to enum.Unit) float64 {
	next := ConvertQuantity(product, quantity, from, to)
	return math.Min(AvailableByUnit(product, to), math.Max(MinByUnit(product, to), next))
}

// Label returns the display label of unit.
func Label(unit enum.Unit) string {
	if unit == enum.UnitArea {
		return "m²"
	}
	return "kg"
}

// Other returns the unit a shopper can switch to from unit.
func Other(unit enum.Unit) enum.Unit {
	if unit == enum.UnitWeight {
		return enum.UnitArea
	}
	return enum.UnitWeight
}
