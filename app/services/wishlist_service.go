package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/models"
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

func (s *WishlistService) Create(ctx context.Context) (models.Wishlist, error) {
	var w models.Wishlist
	err := s.db.WithContext(ctx).Create(&w).Error
	return w, err
}

func (s *WishlistService) Find(ctx context.Context, id uint) (models.Wishlist, error) {
	return findWishlist(s.db.WithContext(ctx), id)
}

func findWishlist(tx *gorm.DB, id uint) (models.Wishlist, error) {
	var w models.Wishlist
	if err := withWishlist(tx).First(&w, id).Error; err != nil {
		return models.Wishlist{}, notFound(err, "wishlist", id)
	}
	return w, nil
}

func (s *WishlistService) All(ctx context.Context) ([]models.Wishlist, error) {
	var lists []models.Wishlist
	err := withWishlist(s.db.WithContext(ctx)).Order("id asc").Find(&lists).Error
	return lists, err
}

func (s *WishlistService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Wishlist{}, id).Error; err != nil {
			return notFound(err, "wishlist", id)
		}
		return deleteWishlistRecords(tx, id)
	})
}

func (s *WishlistService) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM wishlist_products").Error; err != nil {
			return err
		}
		return deleteAll(tx, &models.Wishlist{})
	})
}

// AddProduct saves a product on the wishlist. Adding one that is already
// there changes nothing.
func (s *WishlistService) AddProduct(ctx context.Context, id, productID uint) (models.Wishlist, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := findWishlist(tx, id)
		if err != nil {
			return err
		}
		return addToWishlist(tx, &w, productID)
	})
	if err != nil {
		return models.Wishlist{}, err
	}
	return s.Find(ctx, id)
}

func (s *WishlistService) RemoveProduct(ctx context.Context, id, productID uint) (models.Wishlist, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := findWishlist(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Select("id").First(&models.Product{}, productID).Error; err != nil {
			return notFound(err, "product", productID)
		}
		if err := w.Remove(productID); err != nil {
			return err
		}
		return unlinkProduct(tx, id, productID)
	})
	if err != nil {
		return models.Wishlist{}, err
	}
	return s.Find(ctx, id)
}

func (s *WishlistService) Clear(ctx context.Context, id uint) (models.Wishlist, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := findWishlist(tx, id)
		if err != nil {
			return err
		}
		w.Clear()
		return tx.Exec("DELETE FROM wishlist_products WHERE wishlist_id = ?", id).Error
	})
	if err != nil {
		return models.Wishlist{}, err
	}
	return s.Find(ctx, id)
}

func addToWishlist(tx *gorm.DB, w *models.Wishlist, productID uint) error {
	var p models.Product
	if err := tx.First(&p, productID).Error; err != nil {
		return notFound(err, "product", productID)
	}
	if w.Contains(productID) {
		return nil
	}
	w.Add(p)
	return tx.Exec("INSERT INTO wishlist_products (wishlist_id, product_id) VALUES (?, ?)", w.ID, productID).Error
}

func unlinkProduct(tx *gorm.DB, wishlistID, productID uint) error {
	return tx.Exec("DELETE FROM wishlist_products WHERE wishlist_id = ? AND product_id = ?", wishlistID, productID).Error
}
