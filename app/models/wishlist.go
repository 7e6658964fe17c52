package models

import "fmt"

// Wishlist is the set of products a user has saved for later. A user owns
// at most one; UserService keeps that, since a unique index over a nullable
// column would admit a single unowned row on sqlserver.
type Wishlist struct {
	Model
	UserID   *uint     `gorm:"index" json:"user_id"`
	Products []Product `gorm:"many2many:wishlist_products" json:"products"`
}

func (w *Wishlist) Add(p Product) {
	w.Products = append(w.Products, p)
}

// Remove drops the first product with the given id.
func (w *Wishlist) Remove(productID uint) error {
	for i, p := range w.Products {
		if p.ID == productID {
			w.Products = append(w.Products[:i], w.Products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: product %d", ErrNotInWishlist, productID)
}

func (w *Wishlist) Clear() {
	w.Products = nil
}

// Contains reports whether the product is on the wishlist.
func (w *Wishlist) Contains(productID uint) bool {
	for _, p := range w.Products {
		if p.ID == productID {
			return true
		}
	}
	return false
}
