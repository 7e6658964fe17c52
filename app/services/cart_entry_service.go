package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/market/app/models"
)

type CartEntryService struct {
	db *gorm.DB
}

func NewCartEntryService(db *gorm.DB) *CartEntryService {
	return &CartEntryService{db: db}
}

// Create stores a detached entry of quantity units of productID.
func (s *CartEntryService) Create(ctx context.Context, quantity int, productID uint) (models.CartEntry, error) {
	if quantity <= 0 {
		return models.CartEntry{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	var entry models.CartEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, productID).Error; err != nil {
			return notFound(err, "product", productID)
		}
		entry = models.NewCartEntry(quantity, p)
		return tx.Omit(clause.Associations).Create(&entry).Error
	})
	return entry, err
}

func (s *CartEntryService) Find(ctx context.Context, id uint) (models.CartEntry, error) {
	var entry models.CartEntry
	if err := s.db.WithContext(ctx).Preload("Product").First(&entry, id).Error; err != nil {
		return models.CartEntry{}, notFound(err, "cart entry", id)
	}
	return entry, nil
}

func (s *CartEntryService) All(ctx context.Context) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := s.db.WithContext(ctx).Preload("Product").Order("id asc").Find(&entries).Error
	return entries, err
}

// Update changes the quantity of an entry. Lines of a checked out cart
// are part of the order record and cannot change.
func (s *CartEntryService) Update(ctx context.Context, id uint, quantity int) (models.CartEntry, error) {
	if quantity <= 0 {
		return models.CartEntry{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.CartEntry
		if err := tx.First(&entry, id).Error; err != nil {
			return notFound(err, "cart entry", id)
		}
		if err := ensureMutableCart(tx, entry.CartID); err != nil {
			return err
		}
		return tx.Model(&entry).Update("quantity", quantity).Error
	})
	if err != nil {
		return models.CartEntry{}, err
	}
	return s.Find(ctx, id)
}

func (s *CartEntryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.CartEntry
		if err := tx.First(&entry, id).Error; err != nil {
			return notFound(err, "cart entry", id)
		}
		if err := ensureMutableCart(tx, entry.CartID); err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	})
}

func (s *CartEntryService) DeleteAll(ctx context.Context) error {
	return deleteAll(s.db.WithContext(ctx), &models.CartEntry{})
}

// ensureMutableCart rejects changes to lines of an archived cart.
func ensureMutableCart(tx *gorm.DB, cartID *uint) error {
	if cartID == nil {
		return nil
	}
	var cart models.Cart
	if err := tx.Select("id", "checked_out").First(&cart, *cartID).Error; err != nil {
		return notFound(err, "cart", *cartID)
	}
	if cart.CheckedOut {
		return fmt.Errorf("%w: cart %d is checked out", ErrUnavailable, cart.ID)
	}
	return nil
}
