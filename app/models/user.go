package models

import (
	"sort"

	"github.com/shashiranjanraj/market/pkg/auth"
)

// User owns at most one pending cart, at most one wishlist and an order
// history. The pending cart, when there is one, is always the last
// element of OrderHistory.
type User struct {
	Model
	Name                  string    `gorm:"size:255;not null" json:"name"`
	Email                 string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password              string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Enabled               bool      `gorm:"not null" json:"enabled"`
	AccountNonExpired     bool      `gorm:"not null" json:"account_non_expired"`
	AccountNonLocked      bool      `gorm:"not null" json:"account_non_locked"`
	CredentialsNonExpired bool      `gorm:"not null" json:"credentials_non_expired"`
	Wishlist              *Wishlist `json:"wishlist,omitempty"`
	OrderHistory          []Cart    `gorm:"foreignKey:UserID" json:"order_history"`
}

// Credentials exposes the flags the token check needs.
func (u *User) Credentials() auth.Account {
	return auth.Account{
		Subject:               u.Email,
		Enabled:               u.Enabled,
		AccountNonExpired:     u.AccountNonExpired,
		CredentialsNonExpired: u.CredentialsNonExpired,
		AccountNonLocked:      u.AccountNonLocked,
	}
}

// CurrentCart returns the pending cart, or nil when the history is empty
// or its last cart is already checked out.
func (u *User) CurrentCart() *Cart {
	n := len(u.OrderHistory)
	if n == 0 || u.OrderHistory[n-1].CheckedOut {
		return nil
	}
	return &u.OrderHistory[n-1]
}

// AssignCart makes cart the pending cart. With no pending cart it is
// appended to the history; otherwise it overwrites the pending one, which
// is returned detached and is not archived.
func (u *User) AssignCart(cart *Cart) (dropped *Cart) {
	uid := u.ID
	cart.CheckedOut = false
	cart.UserID = &uid

	if cur := u.CurrentCart(); cur != nil {
		old := *cur
		old.UserID = nil
		cart.Position = cur.Position
		*cur = *cart
		if old.ID == cart.ID {
			return nil
		}
		return &old
	}

	cart.Position = u.nextPosition()
	u.OrderHistory = append(u.OrderHistory, *cart)
	return nil
}

func (u *User) nextPosition() int {
	if n := len(u.OrderHistory); n > 0 {
		return u.OrderHistory[n-1].Position + 1
	}
	return 1
}

// AddToCart appends entry to the pending cart.
func (u *User) AddToCart(entry CartEntry) error {
	cur := u.CurrentCart()
	if cur == nil {
		return ErrNoPendingCart
	}
	cur.AddEntry(entry)
	return nil
}

// RemoveFromCart drops an entry from the pending cart.
func (u *User) RemoveFromCart(entryID uint) (CartEntry, error) {
	cur := u.CurrentCart()
	if cur == nil {
		return CartEntry{}, ErrNoPendingCart
	}
	return cur.RemoveEntry(entryID)
}

// RemoveCurrentCart deletes the pending cart from the history and returns
// it detached. It is a no-op returning nil when there is none.
func (u *User) RemoveCurrentCart() *Cart {
	cur := u.CurrentCart()
	if cur == nil {
		return nil
	}
	removed := *cur
	removed.UserID = nil
	u.OrderHistory = u.OrderHistory[:len(u.OrderHistory)-1]
	return &removed
}

// Checkout runs the cart checkout and archives the pending cart whether or
// not stock was applied. The cart stays in OrderHistory with CheckedOut
// set, so CurrentCart returns nil afterwards.
func (u *User) Checkout(stock StockUpdater) (*Cart, bool, error) {
	cur := u.CurrentCart()
	if cur == nil {
		return nil, false, ErrNoPendingCart
	}

	applied, err := cur.Checkout(stock)
	if err != nil {
		return nil, false, err
	}
	cur.CheckedOut = true
	return cur, applied, nil
}

// OrderCount is the length of the order history, pending cart included.
func (u *User) OrderCount() int {
	return len(u.OrderHistory)
}

// AssignWishlist replaces the user's wishlist and returns the previous one.
func (u *User) AssignWishlist(w *Wishlist) (dropped *Wishlist) {
	uid := u.ID
	w.UserID = &uid
	if u.Wishlist != nil && u.Wishlist.ID != w.ID {
		dropped = u.Wishlist
		dropped.UserID = nil
	}
	u.Wishlist = w
	return dropped
}

func (u *User) AddToWishlist(p Product) error {
	if u.Wishlist == nil {
		return ErrNoWishlist
	}
	u.Wishlist.Add(p)
	return nil
}

func (u *User) RemoveFromWishlist(productID uint) error {
	if u.Wishlist == nil {
		return ErrNoWishlist
	}
	return u.Wishlist.Remove(productID)
}

// RemoveWishlist detaches the wishlist and returns it, or nil.
func (u *User) RemoveWishlist() *Wishlist {
	w := u.Wishlist
	if w == nil {
		return nil
	}
	w.UserID = nil
	u.Wishlist = nil
	return w
}

// SortUsersByOrderCount orders users by OrderCount, largest first. Ties
// keep their input order.
func SortUsersByOrderCount(users []User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].OrderCount() > users[j].OrderCount()
	})
}
