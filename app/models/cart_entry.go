package models

import "github.com/shopspring/decimal"

// CartEntry is one line of a cart: a quantity of a single product.
// CartID is a weak back-reference; the cart owns the entry.
type CartEntry struct {
	Model
	Quantity  int     `gorm:"not null" json:"quantity"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `json:"product"`
	CartID    *uint   `gorm:"index" json:"cart_id"`
}

// NewCartEntry builds an unsaved entry for product.
func NewCartEntry(quantity int, product Product) CartEntry {
	return CartEntry{Quantity: quantity, ProductID: product.ID, Product: product}
}

// ValidateCheckout reports whether the product has enough stock for this
// line on its own.
func (e CartEntry) ValidateCheckout() bool {
	return e.Quantity <= e.Product.Stock
}

// Subtotal is quantity × unit price.
func (e CartEntry) Subtotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}
