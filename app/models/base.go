package models

import (
	"errors"
	"time"
)

// Model is the common primary key and timestamps. Unlike gorm.Model there
// is no soft delete: records are removed for real.
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	// ErrNoPendingCart is returned by cart operations on a user whose
	// order history has no pending cart.
	ErrNoPendingCart = errors.New("no unchecked out cart found")
	// ErrNoWishlist is returned by wishlist operations on a user without one.
	ErrNoWishlist = errors.New("no wishlist found")
	// ErrEntryNotInCart is returned when removing an entry the cart does not hold.
	ErrEntryNotInCart = errors.New("cart entry not in cart")
	// ErrNotInWishlist is returned when removing a product the wishlist does not hold.
	ErrNotInWishlist = errors.New("product not in wishlist")
	// ErrValidationFailed marks a checkout skipped because an entry exceeds
	// stock. Checkout never returns it; it is used for logs and metrics.
	ErrValidationFailed = errors.New("checkout validation failed")
)
