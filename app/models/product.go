package models

import "github.com/shopspring/decimal"

// Product is a catalogue item. Stock only changes through checkout.
type Product struct {
	Model
	Name  string          `gorm:"size:255;not null;index" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock int             `gorm:"not null" json:"stock"`
}
