package models

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Cart is a user's pending order until it is checked out, after which it
// stays in the order history as an archived record.
type Cart struct {
	Model
	CheckedOut bool        `gorm:"not null;index" json:"checked_out"`
	Position   int         `gorm:"not null" json:"position"`
	UserID     *uint       `gorm:"index" json:"user_id"`
	Entries    []CartEntry `json:"entries"`
}

// StockUpdater persists a stock decrement and returns the updated product.
type StockUpdater interface {
	DecrementStock(productID uint, quantity int) (Product, error)
}

// AddEntry appends entry and binds it to the cart. Entries for the same
// product are kept as separate lines.
func (c *Cart) AddEntry(entry CartEntry) {
	id := c.ID
	entry.CartID = &id
	c.Entries = append(c.Entries, entry)
}

// RemoveEntry drops the entry with the given id.
func (c *Cart) RemoveEntry(entryID uint) (CartEntry, error) {
	for i, e := range c.Entries {
		if e.ID != entryID {
			continue
		}
		c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
		e.CartID = nil
		return e, nil
	}
	return CartEntry{}, fmt.Errorf("%w: entry %d", ErrEntryNotInCart, entryID)
}

// Clear removes every entry and returns them detached.
func (c *Cart) Clear() []CartEntry {
	detached := c.Entries
	for i := range detached {
		detached[i].CartID = nil
	}
	c.Entries = nil
	return detached
}

// TotalQuantity is the sum of all entry quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, e := range c.Entries {
		total += e.Quantity
	}
	return total
}

// TotalPrice is the sum of all entry subtotals.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

// ValidateCheckout reports whether every product in the cart has enough
// stock. Quantities of lines sharing a product are summed and checked
// against that product's stock once. This is stricter than checking each
// line on its own: lines of 3 and 3 against a stock of 5 fail although
// each fits. A passing cart therefore never drives stock negative. An
// empty cart is valid.
func (c *Cart) ValidateCheckout() bool {
	demand := make(map[uint]int, len(c.Entries))
	stock := make(map[uint]int, len(c.Entries))
	for _, e := range c.Entries {
		demand[e.ProductID] += e.Quantity
		stock[e.ProductID] = e.Product.Stock
	}
	for productID, qty := range demand {
		if qty > stock[productID] {
			return false
		}
	}
	return true
}

// Checkout decrements stock for every entry when ValidateCheckout holds.
// It reports false without touching stock otherwise. Entries stay in the
// cart and CheckedOut is left to the owner.
func (c *Cart) Checkout(stock StockUpdater) (bool, error) {
	if !c.ValidateCheckout() {
		return false, nil
	}

	for i := range c.Entries {
		e := c.Entries[i]
		updated, err := stock.DecrementStock(e.ProductID, e.Quantity)
		if err != nil {
			return false, fmt.Errorf("checkout entry %d: %w", e.ID, err)
		}
		for j := range c.Entries {
			if c.Entries[j].ProductID == updated.ID {
				c.Entries[j].Product = updated
			}
		}
	}
	return true, nil
}

// SortCartsByQuantity orders carts by TotalQuantity, largest first.
// Ties keep their input order.
func SortCartsByQuantity(carts []Cart) {
	sort.SliceStable(carts, func(i, j int) bool {
		return carts[i].TotalQuantity() > carts[j].TotalQuantity()
	})
}
