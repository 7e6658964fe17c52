package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/pkg/logger"
)

// ProductCache is the subset of cache.Store the services need.
type ProductCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type ProductService struct {
	db    *gorm.DB
	cache ProductCache
	ttl   time.Duration
}

// NewProductService builds the service. c may be nil to disable caching.
func NewProductService(db *gorm.DB, c ProductCache, ttl time.Duration) *ProductService {
	return &ProductService{db: db, cache: c, ttl: ttl}
}

func productKey(id uint) string { return fmt.Sprintf("product:%d", id) }

func validProduct(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) error {
	if err := validProduct(p); err != nil {
		return err
	}
	p.ID = 0
	return s.db.WithContext(ctx).Create(p).Error
}

// Find returns a product, reading through the cache.
func (s *ProductService) Find(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	if s.cache != nil && s.cache.Get(ctx, productKey(id), &p) {
		return p, nil
	}
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return models.Product{}, notFound(err, "product", id)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, productKey(id), p, s.ttl); err != nil {
			logger.WithCtx(ctx).Warn("product cache write failed", "product_id", id, "error", err)
		}
	}
	return p, nil
}

func (s *ProductService) All(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Order("id asc").Find(&products).Error
	return products, err
}

// Update overwrites name, price and stock of an existing product.
func (s *ProductService) Update(ctx context.Context, p *models.Product) error {
	if err := validProduct(p); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, p.ID).Error; err != nil {
			return notFound(err, "product", p.ID)
		}
		return tx.Model(&existing).Select("name", "price", "stock").Updates(p).Error
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, p.ID)
	return s.db.WithContext(ctx).First(p, p.ID).Error
}

// Delete removes a product together with the cart lines and wishlist
// links that reference it.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Product{}, id).Error; err != nil {
			return notFound(err, "product", id)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM wishlist_products WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) DeleteAll(ctx context.Context) error {
	var ids []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if err := deleteAll(tx, &models.CartEntry{}); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM wishlist_products").Error; err != nil {
			return err
		}
		return deleteAll(tx, &models.Product{})
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, ids...)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, ids ...uint) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		logger.WithCtx(ctx).Warn("product cache invalidation failed", "error", err)
	}
}

// Stock returns a StockUpdater that writes through tx and records every
// product it touches so the caller can invalidate them after commit.
func (s *ProductService) Stock(ctx context.Context, tx *gorm.DB) *TxStock {
	return &TxStock{ctx: ctx, tx: tx}
}

// TxStock decrements stock inside a transaction.
type TxStock struct {
	ctx     context.Context
	tx      *gorm.DB
	Touched []uint
	Units   int
}

func (t *TxStock) DecrementStock(productID uint, quantity int) (models.Product, error) {
	res := t.tx.WithContext(t.ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return models.Product{}, fmt.Errorf("decrement stock of product %d: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}

	var p models.Product
	if err := t.tx.WithContext(t.ctx).First(&p, productID).Error; err != nil {
		return models.Product{}, notFound(err, "product", productID)
	}
	t.Touched = append(t.Touched, productID)
	t.Units += quantity
	return p, nil
}
