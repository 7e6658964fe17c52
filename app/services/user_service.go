package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/repositories"
	"github.com/shashiranjanraj/market/pkg/event"
	"github.com/shashiranjanraj/market/pkg/logger"
)

// UserService runs User aggregate operations. Each call loads the
// aggregate inside a transaction, applies the domain method and writes
// back only the rows it changed.
type UserService struct {
	db       *gorm.DB
	users    *repositories.UserRepository
	products *ProductService
}

func NewUserService(db *gorm.DB, products *ProductService) *UserService {
	return &UserService{db: db, users: repositories.NewUserRepository(db), products: products}
}

// UserChanges lists the fields Update may change. Nil fields are left alone.
type UserChanges struct {
	Name                  *string `json:"name"`
	Enabled               *bool   `json:"enabled"`
	AccountNonExpired     *bool   `json:"account_non_expired"`
	AccountNonLocked      *bool   `json:"account_non_locked"`
	CredentialsNonExpired *bool   `json:"credentials_non_expired"`
}

// CheckoutResult is the archived cart and whether stock was decremented.
type CheckoutResult struct {
	Cart    models.Cart `json:"cart"`
	Applied bool        `json:"applied"`
}

// CheckoutEvent is the payload of EventCartCheckedOut.
type CheckoutEvent struct {
	UserID  uint
	CartID  uint
	Applied bool
	Units   int
}

func (s *UserService) Find(ctx context.Context, id uint) (models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, notFound(err, "user", id)
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, notFound(err, "user", email)
	}
	return u, nil
}

func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

// SortedByOrderCount returns all users, longest order history first.
func (s *UserService) SortedByOrderCount(ctx context.Context) ([]models.User, error) {
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	models.SortUsersByOrderCount(users)
	return users, nil
}

// OrderHistory returns the user's carts in history order, the pending
// cart last.
func (s *UserService) OrderHistory(ctx context.Context, id uint) ([]models.Cart, error) {
	u, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.OrderHistory, nil
}

// GetCart returns the pending cart, or nil when there is none.
func (s *UserService) GetCart(ctx context.Context, id uint) (*models.Cart, error) {
	u, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.CurrentCart(), nil
}

// GetWishlist returns the wishlist, or nil when there is none.
func (s *UserService) GetWishlist(ctx context.Context, id uint) (*models.Wishlist, error) {
	u, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Wishlist, nil
}

func (s *UserService) Update(ctx context.Context, id uint, c UserChanges) (models.User, error) {
	if c.Name != nil && *c.Name == "" {
		return models.User{}, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	return s.mutate(ctx, id, func(tx *gorm.DB, u *models.User) error {
		if c.Name != nil {
			u.Name = *c.Name
		}
		setFlag(&u.Enabled, c.Enabled)
		setFlag(&u.AccountNonExpired, c.AccountNonExpired)
		setFlag(&u.AccountNonLocked, c.AccountNonLocked)
		setFlag(&u.CredentialsNonExpired, c.CredentialsNonExpired)
		return s.users.WithTx(tx).Update(ctx, u)
	})
}

func setFlag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Delete removes the user with its carts and wishlist.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Lock(ctx, id); err != nil {
			return notFound(err, "user", id)
		}
		owned := tx.Model(&models.Cart{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("cart_id IN (?)", owned).Delete(&models.CartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Cart{}).Error; err != nil {
			return err
		}
		var lists []uint
		if err := tx.Model(&models.Wishlist{}).Where("user_id = ?", id).Pluck("id", &lists).Error; err != nil {
			return err
		}
		for _, wid := range lists {
			if err := deleteWishlistRecords(tx, wid); err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// DeleteAll removes every user and everything they own. Carts and
// wishlists that belong to nobody are kept.
func (s *UserService) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Cart{}).Select("id").Where("user_id IS NOT NULL")
		if err := tx.Where("cart_id IN (?)", owned).Delete(&models.CartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IS NOT NULL").Delete(&models.Cart{}).Error; err != nil {
			return err
		}
		lists := tx.Model(&models.Wishlist{}).Select("id").Where("user_id IS NOT NULL")
		if err := tx.Exec("DELETE FROM wishlist_products WHERE wishlist_id IN (?)", lists).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IS NOT NULL").Delete(&models.Wishlist{}).Error; err != nil {
			return err
		}
		return deleteAll(tx, &models.User{})
	})
}

// AssignCart makes an open cart the user's pending cart. A cart that is
// checked out or owned by someone else is rejected. A replaced pending
// cart is detached and kept as an unowned cart.
func (s *UserService) AssignCart(ctx context.Context, userID, cartID uint) (models.User, error) {
	return s.mutate(ctx, userID, func(tx *gorm.DB, u *models.User) error {
		cart, err := findOpenCart(tx, cartID)
		if err != nil {
			return err
		}
		if cart.UserID != nil && *cart.UserID != u.ID {
			return fmt.Errorf("%w: cart %d belongs to another user", ErrUnavailable, cartID)
		}
		if dropped := u.AssignCart(&cart); dropped != nil {
			if err := saveCartState(tx, dropped); err != nil {
				return err
			}
		}
		return saveCartState(tx, &cart)
	})
}

// AddToCart puts a detached entry into the pending cart, creating and
// assigning a cart first when the user has none.
func (s *UserService) AddToCart(ctx context.Context, userID, entryID uint) (models.User, error) {
	return s.mutate(ctx, userID, func(tx *gorm.DB, u *models.User) error {
		var current uint
		if cur := u.CurrentCart(); cur != nil {
			current = cur.ID
		}
		entry, err := detachedEntry(tx, entryID, current)
		if err != nil || entry == nil {
			return err
		}

		if current == 0 {
			cart := models.Cart{}
			if err := tx.Create(&cart).Error; err != nil {
				return err
			}
			u.AssignCart(&cart)
			if err := saveCartState(tx, &cart); err != nil {
				return err
			}
		}
		if err := u.AddToCart(*entry); err != nil {
			return err
		}
		return attachEntry(tx, entryID, u.CurrentCart().ID)
	})
}

// RemoveFromCart takes an entry out of the pending cart and deletes it.
func (s *UserService) RemoveFromCart(ctx context.Context, userID, entryID uint) (models.User, error) {
	return s.mutate(ctx, userID, func(tx *gorm.DB, u *models.User) error {
		if err := tx.Select("id").First(&models.CartEntry{}, entryID).Error; err != nil {
			return notFound(err, "cart entry", entryID)
		}
		if _, err := u.RemoveFromCart(entryID); err != nil {
			return err
		}
		return tx.Delete(&models.CartEntry{}, entryID).Error
	})
}

// RemoveCart deletes the pending cart and its entries, if there is one.
// Checked out carts are never touched.
func (s *UserService) RemoveCart(ctx context.Context, userID uint) (models.User, error) {
	return s.mutate(ctx, userID, func(tx *gorm.DB, u *models.User) error {
		removed := u.RemoveCurrentCart()
		if removed == nil {
			return nil
		}
		return deleteCartRecords(tx, removed.ID)
	})
}

// Checkout archives the pending cart. Stock is decremented only when every
// product has enough; otherwise the cart is archived unchanged and the
// result reports Applied false.
func (s *UserService) Checkout(ctx context.Context, userID uint) (CheckoutResult, error) {
	var (
		result CheckoutResult
		stock  *TxStock
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.load(ctx, tx, userID)
		if err != nil {
			return err
		}
		cur := u.CurrentCart()
		if cur == nil {
			return models.ErrNoPendingCart
		}
		if err := refreshProducts(tx, cur); err != nil {
			return err
		}

		stock = s.products.Stock(ctx, tx)
		archived, applied, err := u.Checkout(stock)
		if err != nil {
			return err
		}
		if err := saveCartState(tx, archived); err != nil {
			return err
		}
		result = CheckoutResult{Cart: *archived, Applied: applied}
		return nil
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	s.products.invalidate(ctx, stock.Touched...)

	log := logger.WithCtx(ctx).With("user_id", userID, "cart_id", result.Cart.ID)
	if result.Applied {
		log.Info("cart checked out", "units", stock.Units)
	} else {
		log.Warn("cart archived without stock change", "error", models.ErrValidationFailed)
	}
	event.Fire(EventCartCheckedOut, CheckoutEvent{
		UserID:  userID,
		CartID:  result.Cart.ID,
		Applied: result.Applied,
		Units:   stock.Units,
	})
	return result, nil
}

// refreshProducts rereads the products of a cart, locked where supported,
// so validation sees the stock of this transaction.
func refreshProducts(tx *gorm.DB, cart *models.Cart) error {
	if len(cart.Entries) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(cart.Entries))
	for _, e := range cart.Entries {
		ids = append(ids, e.ProductID)
	}
	var products []models.Product
	if err := forUpdate(tx).Where("id IN ?", ids).Order("id asc").Find(&products).Error; err != nil {
		return err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range cart.Entries {
		if p, ok := byID[cart.Entries[i].ProductID]; ok {
			cart.Entries[i].Product = p
		}
	}
	return nil
}

// AssignWishlist gives the user a wishlist that nobody else owns. The
// previous wishlist, if any, is detached and kept.
func (s *UserService) AssignWishlist(ctx context.Context, userID, wishlistID uint) (models.User, error) {
	return s.mutate(ctx, userID, func(tx *gorm.DB, u *models.User) error {
		w, err := findWishlist(tx, wishlistID)
		if err != nil {
			return err
		}
		if w.UserID != nil && *w.UserID != u.ID {
			return fmt.Errorf("%w: wishlist %d belongs to another user", ErrUnavailable, wishlistID)
		}
		if dropped := u.AssignWishlist(&w); dropped != nil {
			if err := setWishlistOwner(tx, dropped); err != nil {
				return err
			}
		}
		return setWishlistOwner(tx, &w)
	})
}

// AddToWishlist saves a product, creating the wishlist on first use.
func (s *UserService) AddToWishlist(ctx context.Context, userID, productID uint) (models.User, error) {
	return s.mutate(ctx, userID, func(tx *gorm.DB, u *models.User) error {
		var p models.Product
		if err := tx.First(&p, productID).Error; err != nil {
			return notFound(err, "product", productID)
		}
		if u.Wishlist == nil {
			w := models.Wishlist{}
			if err := tx.Create(&w).Error; err != nil {
				return err
			}
			u.AssignWishlist(&w)
			if err := setWishlistOwner(tx, &w); err != nil {
				return err
			}
		}
		if u.Wishlist.Contains(productID) {
			return nil
		}
		if err := u.AddToWishlist(p); err != nil {
			return err
		}
		return tx.Exec("INSERT INTO wishlist_products (wishlist_id, product_id) VALUES (?, ?)", u.Wishlist.ID, productID).Error
	})
}

func (s *UserService) RemoveFromWishlist(ctx context.Context, userID, productID uint) (models.User, error) {
	return s.mutate(ctx, userID, func(tx *gorm.DB, u *models.User) error {
		if err := tx.Select("id").First(&models.Product{}, productID).Error; err != nil {
			return notFound(err, "product", productID)
		}
		if err := u.RemoveFromWishlist(productID); err != nil {
			return err
		}
		return unlinkProduct(tx, u.Wishlist.ID, productID)
	})
}

// RemoveWishlist deletes the user's wishlist, if there is one.
func (s *UserService) RemoveWishlist(ctx context.Context, userID uint) (models.User, error) {
	return s.mutate(ctx, userID, func(tx *gorm.DB, u *models.User) error {
		w := u.RemoveWishlist()
		if w == nil {
			return nil
		}
		return deleteWishlistRecords(tx, w.ID)
	})
}

// setWishlistOwner stores w.UserID and detaches any other wishlist still
// pointing at that user.
func setWishlistOwner(tx *gorm.DB, w *models.Wishlist) error {
	if w.UserID != nil {
		err := tx.Model(&models.Wishlist{}).
			Where("user_id = ? AND id <> ?", *w.UserID, w.ID).
			Update("user_id", nil).Error
		if err != nil {
			return err
		}
	}
	return tx.Model(&models.Wishlist{}).Where("id = ?", w.ID).Update("user_id", w.UserID).Error
}

// load locks and loads the aggregate inside tx.
func (s *UserService) load(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	repo := s.users.WithTx(tx)
	if err := repo.Lock(ctx, id); err != nil {
		return nil, notFound(err, "user", id)
	}
	u, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

// mutate runs fn on the aggregate in a transaction and returns the
// reloaded user after commit.
func (s *UserService) mutate(ctx context.Context, id uint, fn func(tx *gorm.DB, u *models.User) error) (models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		return fn(tx, u)
	})
	if err != nil {
		return models.User{}, err
	}
	return s.Find(ctx, id)
}
