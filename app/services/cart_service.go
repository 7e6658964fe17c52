package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/models"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// Create stores an empty cart that belongs to no user yet.
func (s *CartService) Create(ctx context.Context) (models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Create(&cart).Error
	return cart, err
}

func (s *CartService) Find(ctx context.Context, id uint) (models.Cart, error) {
	return findCart(s.db.WithContext(ctx), id)
}

func findCart(tx *gorm.DB, id uint) (models.Cart, error) {
	var cart models.Cart
	if err := withCart(tx).First(&cart, id).Error; err != nil {
		return models.Cart{}, notFound(err, "cart", id)
	}
	return cart, nil
}

// findOpenCart loads a cart and rejects archived ones.
func findOpenCart(tx *gorm.DB, id uint) (models.Cart, error) {
	cart, err := findCart(tx, id)
	if err != nil {
		return cart, err
	}
	if cart.CheckedOut {
		return models.Cart{}, fmt.Errorf("%w: cart %d is checked out", ErrUnavailable, id)
	}
	return cart, nil
}

func (s *CartService) All(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	err := withCart(s.db.WithContext(ctx)).Order("id asc").Find(&carts).Error
	return carts, err
}

// SortedByQuantity returns all carts, largest total quantity first.
func (s *CartService) SortedByQuantity(ctx context.Context) ([]models.Cart, error) {
	carts, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	models.SortCartsByQuantity(carts)
	return carts, nil
}

// Delete removes a cart and its entries. If it was a user's pending cart
// the user is left without one.
func (s *CartService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Cart{}, id).Error; err != nil {
			return notFound(err, "cart", id)
		}
		return deleteCartRecords(tx, id)
	})
}

func (s *CartService) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx, &models.CartEntry{}); err != nil {
			return err
		}
		return deleteAll(tx, &models.Cart{})
	})
}

// AddEntry moves a detached entry into an open cart.
func (s *CartService) AddEntry(ctx context.Context, cartID, entryID uint) (models.Cart, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findOpenCart(tx, cartID)
		if err != nil {
			return err
		}
		entry, err := detachedEntry(tx, entryID, cartID)
		if err != nil || entry == nil {
			return err
		}
		cart.AddEntry(*entry)
		return attachEntry(tx, entryID, cart.ID)
	})
	if err != nil {
		return models.Cart{}, err
	}
	return s.Find(ctx, cartID)
}

// RemoveEntry takes an entry out of an open cart and deletes it.
func (s *CartService) RemoveEntry(ctx context.Context, cartID, entryID uint) (models.Cart, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findOpenCart(tx, cartID)
		if err != nil {
			return err
		}
		if _, err := cart.RemoveEntry(entryID); err != nil {
			return err
		}
		return tx.Delete(&models.CartEntry{}, entryID).Error
	})
	if err != nil {
		return models.Cart{}, err
	}
	return s.Find(ctx, cartID)
}

// Clear deletes every entry of an open cart.
func (s *CartService) Clear(ctx context.Context, cartID uint) (models.Cart, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findOpenCart(tx, cartID)
		if err != nil {
			return err
		}
		if len(cart.Clear()) == 0 {
			return nil
		}
		return tx.Where("cart_id = ?", cartID).Delete(&models.CartEntry{}).Error
	})
	if err != nil {
		return models.Cart{}, err
	}
	return s.Find(ctx, cartID)
}

// detachedEntry loads an entry that may join cartID. It returns nil
// without error when the entry is already in that cart, and ErrUnavailable
// when another cart holds it.
func detachedEntry(tx *gorm.DB, entryID, cartID uint) (*models.CartEntry, error) {
	var entry models.CartEntry
	if err := tx.Preload("Product").First(&entry, entryID).Error; err != nil {
		return nil, notFound(err, "cart entry", entryID)
	}
	if entry.CartID != nil {
		if *entry.CartID == cartID {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: cart entry %d belongs to cart %d", ErrUnavailable, entryID, *entry.CartID)
	}
	return &entry, nil
}

func attachEntry(tx *gorm.DB, entryID, cartID uint) error {
	return tx.Model(&models.CartEntry{}).Where("id = ?", entryID).Update("cart_id", cartID).Error
}
