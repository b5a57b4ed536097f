package models

import "github.com/stripe/stripe-go/v79"

// Product 代表目錄中的一種布料
type Product struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Slug                string          `json:"slug"`
	Description         string          `json:"description"`
	Origin              string          `json:"origin"`
	Category            string          `json:"category"`
	PricePerKg          float64         `json:"price_per_kg"`
	GramsPerSquareMeter float64         `json:"grams_per_square_meter"`
	MinKg               float64         `json:"min_kg"`
	AvailableKg         float64         `json:"available_kg"`
	Currency            stripe.Currency `json:"currency"`
	Image               string          `json:"image"`
	Colors              []string        `json:"colors"`
	Composition         string          `json:"composition"`
	Tags                []string        `json:"tags"`
}
