package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/pkg/auth"
)

// Container holds one instance of every service, wired to the same
// database.
type Container struct {
	Products  *ProductService
	Entries   *CartEntryService
	Carts     *CartService
	Wishlists *WishlistService
	Users     *UserService
	Auth      *AuthService
	Tokens    *auth.TokenService
}

// NewContainer builds the services. productCache may be nil.
func NewContainer(db *gorm.DB, productCache ProductCache, cacheTTL time.Duration, tokens *auth.TokenService) *Container {
	products := NewProductService(db, productCache, cacheTTL)
	return &Container{
		Products:  products,
		Entries:   NewCartEntryService(db),
		Carts:     NewCartService(db),
		Wishlists: NewWishlistService(db),
		Users:     NewUserService(db, products),
		Auth:      NewAuthService(db, tokens),
		Tokens:    tokens,
	}
}
