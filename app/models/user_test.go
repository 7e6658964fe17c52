package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/pkg/auth"
)

func newUser(id uint) *models.User {
	return &models.User{Model: models.Model{ID: id}, Email: "u@example.com"}
}

func TestUser_NoCartInitially(t *testing.T) {
	u := newUser(1)
	assert.Nil(t, u.CurrentCart())
	assert.ErrorIs(t, u.AddToCart(entry(1, 1, product(1, 1, "1"))), models.ErrNoPendingCart)
	_, err := u.RemoveFromCart(1)
	assert.ErrorIs(t, err, models.ErrNoPendingCart)
	_, _, err = u.Checkout(newMemStock())
	assert.ErrorIs(t, err, models.ErrNoPendingCart)
	assert.Nil(t, u.RemoveCurrentCart())
}

func TestUser_AssignCartAppendsThenReplaces(t *testing.T) {
	u := newUser(1)

	first := &models.Cart{Model: models.Model{ID: 10}, CheckedOut: true}
	assert.Nil(t, u.AssignCart(first))
	assert.Equal(t, 1, u.OrderCount())

	cur := u.CurrentCart()
	require.NotNil(t, cur)
	assert.Equal(t, uint(10), cur.ID)
	assert.False(t, cur.CheckedOut, "assign resets the flag")
	require.NotNil(t, cur.UserID)
	assert.Equal(t, uint(1), *cur.UserID)

	second := &models.Cart{Model: models.Model{ID: 11}}
	dropped := u.AssignCart(second)
	require.NotNil(t, dropped)
	assert.Equal(t, uint(10), dropped.ID)
	assert.Nil(t, dropped.UserID)
	assert.Equal(t, 1, u.OrderCount(), "replacement keeps the history length")
	assert.Equal(t, uint(11), u.CurrentCart().ID)
	assert.Equal(t, 1, u.CurrentCart().Position)
}

func TestUser_AssignSameCartTwice(t *testing.T) {
	u := newUser(1)
	c := &models.Cart{Model: models.Model{ID: 3}}
	u.AssignCart(c)
	assert.Nil(t, u.AssignCart(c))
	assert.Equal(t, 1, u.OrderCount())
}

func TestUser_CheckoutArchivesCart(t *testing.T) {
	p := product(1, 2, "4.00")
	stock := newMemStock(p)
	u := newUser(1)

	u.AssignCart(&models.Cart{Model: models.Model{ID: 1}})
	require.NoError(t, u.AddToCart(entry(1, 2, p)))

	archived, applied, err := u.Checkout(stock)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, archived.CheckedOut)
	assert.Equal(t, 0, stock.products[1].Stock)

	assert.Nil(t, u.CurrentCart())
	assert.Equal(t, 1, u.OrderCount(), "archived cart stays in the history")
	assert.True(t, u.OrderHistory[0].CheckedOut)

	// A new cart goes after the archived one.
	u.AssignCart(&models.Cart{Model: models.Model{ID: 2}})
	assert.Equal(t, 2, u.OrderCount())
	assert.Equal(t, 2, u.CurrentCart().Position)

	// Stock is now 0, so this checkout is skipped but still archived.
	require.NoError(t, u.AddToCart(entry(2, 1, stock.products[1])))
	_, applied, err = u.Checkout(stock)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 0, stock.products[1].Stock)
	assert.Nil(t, u.CurrentCart())
	assert.Equal(t, 2, u.OrderCount())
}

func TestUser_RemoveCurrentCart(t *testing.T) {
	u := newUser(1)
	u.AssignCart(&models.Cart{Model: models.Model{ID: 1}})
	_, _, err := u.Checkout(newMemStock())
	require.NoError(t, err)

	u.AssignCart(&models.Cart{Model: models.Model{ID: 2}})
	removed := u.RemoveCurrentCart()
	require.NotNil(t, removed)
	assert.Equal(t, uint(2), removed.ID)
	assert.Nil(t, removed.UserID)
	assert.Equal(t, 1, u.OrderCount(), "archived carts are untouched")
	assert.Nil(t, u.RemoveCurrentCart())
}

func TestUser_RemoveFromCart(t *testing.T) {
	u := newUser(1)
	u.AssignCart(&models.Cart{Model: models.Model{ID: 1}})
	require.NoError(t, u.AddToCart(entry(5, 1, product(1, 1, "1"))))

	_, err := u.RemoveFromCart(6)
	assert.ErrorIs(t, err, models.ErrEntryNotInCart)

	removed, err := u.RemoveFromCart(5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), removed.ID)
	assert.Empty(t, u.CurrentCart().Entries)
}

func TestUser_WishlistLifecycle(t *testing.T) {
	u := newUser(1)
	p := product(1, 1, "1")

	assert.ErrorIs(t, u.AddToWishlist(p), models.ErrNoWishlist)
	assert.ErrorIs(t, u.RemoveFromWishlist(1), models.ErrNoWishlist)
	assert.Nil(t, u.RemoveWishlist())

	assert.Nil(t, u.AssignWishlist(&models.Wishlist{Model: models.Model{ID: 1}}))
	require.NoError(t, u.AddToWishlist(p))
	assert.True(t, u.Wishlist.Contains(1))

	dropped := u.AssignWishlist(&models.Wishlist{Model: models.Model{ID: 2}})
	require.NotNil(t, dropped)
	assert.Equal(t, uint(1), dropped.ID)
	assert.Nil(t, dropped.UserID)

	assert.ErrorIs(t, u.RemoveFromWishlist(1), models.ErrNotInWishlist)

	removed := u.RemoveWishlist()
	require.NotNil(t, removed)
	assert.Nil(t, removed.UserID)
	assert.Nil(t, u.Wishlist)
}

func TestSortUsersByOrderCount(t *testing.T) {
	a := models.User{Model: models.Model{ID: 1}, OrderHistory: make([]models.Cart, 1)}
	b := models.User{Model: models.Model{ID: 2}, OrderHistory: make([]models.Cart, 3)}
	c := models.User{Model: models.Model{ID: 3}, OrderHistory: make([]models.Cart, 1)}
	d := models.User{Model: models.Model{ID: 4}}

	users := []models.User{a, d, b, c}
	models.SortUsersByOrderCount(users)

	var ids []uint
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []uint{2, 1, 3, 4}, ids)
}

func TestUser_Credentials(t *testing.T) {
	u := models.User{Email: "ada@example.com", Enabled: true, AccountNonExpired: true, CredentialsNonExpired: true}
	acct := u.Credentials()
	assert.Equal(t, "ada@example.com", acct.Subject)
	assert.ErrorIs(t, auth.CheckAccount(acct), auth.ErrAccountLocked)
}
