package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/testkit"
)

func TestProductService_CreateValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]models.Product{
		"no name":        {Price: decimal.NewFromInt(1), Stock: 1},
		"negative price": {Name: "x", Price: decimal.NewFromInt(-1), Stock: 1},
		"negative stock": {Name: "x", Price: decimal.NewFromInt(1), Stock: -1},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, f.products.Create(ctx, &p), services.ErrInvalidInput)
		})
	}
}

func TestProductService_FindReadsThroughCache(t *testing.T) {
	db := testkit.NewDB(t)
	c := newMemCache()
	svc := services.NewProductService(db, c, 0)
	ctx := context.Background()

	p := models.Product{Name: "kettle", Price: decimal.RequireFromString("59.00"), Stock: 3}
	require.NoError(t, svc.Create(ctx, &p))

	got, err := svc.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)

	// A write behind the service's back is not seen while cached.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).Update("stock", 99).Error)
	got, err = svc.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
	assert.True(t, decimal.RequireFromString("59").Equal(got.Price))

	// Update invalidates.
	got.Stock = 7
	require.NoError(t, svc.Update(ctx, &got))
	got, err = svc.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)
}

func TestProductService_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.products.Find(ctx, 404)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, f.products.Delete(ctx, 404), services.ErrNotFound)

	missing := models.Product{Model: models.Model{ID: 404}, Name: "x", Price: decimal.NewFromInt(1)}
	assert.ErrorIs(t, f.products.Update(ctx, &missing), services.ErrNotFound)
}

func TestProductService_DeleteRemovesReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "mug", 5, "12.00")
	keep := f.product(t, "filters", 5, "4.50")

	u := f.user(t, "del@example.com")
	_, err := f.users.AddToCart(ctx, u.ID, f.entry(t, 1, p).ID)
	require.NoError(t, err)
	_, err = f.users.AddToWishlist(ctx, u.ID, p.ID)
	require.NoError(t, err)
	_, err = f.users.AddToWishlist(ctx, u.ID, keep.ID)
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(ctx, p.ID))

	got, err := f.users.Find(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentCart())
	assert.Empty(t, got.CurrentCart().Entries)
	require.NotNil(t, got.Wishlist)
	require.Len(t, got.Wishlist.Products, 1)
	assert.Equal(t, keep.ID, got.Wishlist.Products[0].ID)
}

func TestProductService_AllAndDeleteAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "a", 1, "1")
	f.product(t, "b", 1, "1")

	all, err := f.products.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, f.products.DeleteAll(ctx))
	all, err = f.products.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTxStock_MissingProduct(t *testing.T) {
	f := newFixture(t)
	stock := f.products.Stock(context.Background(), f.db)
	_, err := stock.DecrementStock(404, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
