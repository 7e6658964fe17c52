package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/testkit"
)

// memCache is an in-memory ProductCache.
type memCache struct {
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest interface{}) bool {
	b, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.data[key] = b
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fixture struct {
	db       *gorm.DB
	products *services.ProductService
	entries  *services.CartEntryService
	carts    *services.CartService
	lists    *services.WishlistService
	users    *services.UserService
}

func newFixture(t *testing.T) *fixture {
	db := testkit.NewDB(t)
	products := services.NewProductService(db, nil, 0)
	return &fixture{
		db:       db,
		products: products,
		entries:  services.NewCartEntryService(db),
		carts:    services.NewCartService(db),
		lists:    services.NewWishlistService(db),
		users:    services.NewUserService(db, products),
	}
}

func (f *fixture) product(t *testing.T, name string, stock int, price string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Stock: stock, Price: decimal.RequireFromString(price)}
	require.NoError(t, f.products.Create(context.Background(), &p))
	return p
}

func (f *fixture) entry(t *testing.T, qty int, p models.Product) models.CartEntry {
	t.Helper()
	e, err := f.entries.Create(context.Background(), qty, p.ID)
	require.NoError(t, err)
	return e
}

func (f *fixture) user(t *testing.T, email string) models.User {
	t.Helper()
	u := models.User{
		Name:                  "Test User",
		Email:                 email,
		Password:              "x",
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}
	require.NoError(t, f.db.Create(&u).Error)
	return u
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, f.db.First(&p, id).Error)
	return p.Stock
}
