// Package services coordinates the domain models with the database. Every
// mutating call runs in a single transaction, so a rejected operation
// leaves no partial writes behind.
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/pkg/database"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnavailable is returned when a cart, entry or wishlist cannot take
	// part in an operation: it is archived or already owned elsewhere.
	ErrUnavailable = errors.New("record unavailable")
)

// EventCartCheckedOut is fired after a checkout commits with a
// CheckoutEvent payload.
const EventCartCheckedOut = "cart.checked_out"

func notFound(err error, what string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %v", ErrNotFound, what, id)
	}
	return fmt.Errorf("find %s %v: %w", what, id, err)
}

// forUpdate adds a row lock where the dialect supports one.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if database.SupportsRowLocks(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func byID(db *gorm.DB) *gorm.DB { return db.Order("id asc") }

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }

// withCart preloads the entries of a cart and their products.
func withCart(db *gorm.DB) *gorm.DB {
	return db.Preload("Entries", byID).Preload("Entries.Product")
}

func withWishlist(db *gorm.DB) *gorm.DB {
	return db.Preload("Products", byID)
}

func saveCartState(tx *gorm.DB, c *models.Cart) error {
	return tx.Model(&models.Cart{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"checked_out": c.CheckedOut,
		"position":    c.Position,
		"user_id":     c.UserID,
	}).Error
}

func deleteCartRecords(tx *gorm.DB, cartID uint) error {
	if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartEntry{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Cart{}, cartID).Error
}

func deleteWishlistRecords(tx *gorm.DB, wishlistID uint) error {
	if err := tx.Exec("DELETE FROM wishlist_products WHERE wishlist_id = ?", wishlistID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Wishlist{}, wishlistID).Error
}

func deleteAll(tx *gorm.DB, model interface{}) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
}
