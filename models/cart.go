package models

import (
	"github.com/stripe/stripe-go/v79"

	"goflare.io/storefront/models/enum"
)

// Cart 代表購物車，序列化後即為儲存槽中的內容
type Cart struct {
	Items []CartItem `json:"items"`
}

// CartItem 代表購物車中的單個商品項目，以 (ProductID, Unit) 為鍵
type CartItem struct {
	ProductID string    `json:"productId"`
	Unit      enum.Unit `json:"unit"`
	Quantity  float64   `json:"quantity"`
}

// CartLine is a cart item joined with its catalog product and priced.
type CartLine struct {
	Item      CartItem `json:"item"`
	Product   *Product `json:"product"`
	UnitPrice float64  `json:"unit_price"`
	Total     float64  `json:"total"`
}

// CartSummary 代表購物車的計價結果
type CartSummary struct {
	Lines    []CartLine      `json:"lines"`
	Total    float64         `json:"total"`
	Currency stripe.Currency `json:"currency"`
}

func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// ItemCount is the number of distinct line items, not the summed quantity.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Find returns the index of the line item keyed by (productID, unit).
func (c *Cart) Find(productID string, unit enum.Unit) (int, bool) {
	if c == nil {
		return -1, false
	}
	for i, item := range c.Items {
		if item.ProductID == productID && item.Unit == unit {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a copy whose Items can be modified without touching c.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return NewCart()
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items}
}
