package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/pkg/database"
)

// UserRepository loads and stores User aggregates. Errors are returned as
// gorm reports them; gorm.ErrRecordNotFound means no such user.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// aggregate preloads the order history in position order with entries and
// products, and the wishlist with its products.
func aggregate(db *gorm.DB) *gorm.DB {
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }
	return db.
		Preload("OrderHistory", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }).
		Preload("OrderHistory.Entries", byID).
		Preload("OrderHistory.Entries.Product").
		Preload("Wishlist").
		Preload("Wishlist.Products", byID)
}

// FindByID loads the whole aggregate.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := aggregate(r.db.WithContext(ctx)).First(&user, id).Error
	return user, err
}

// FindByEmail loads the user row only, without associations.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

// Lock takes a row lock on the user for the rest of the transaction where
// the dialect supports it. It still reports a missing user elsewhere.
func (r *UserRepository) Lock(ctx context.Context, id uint) error {
	q := r.db.WithContext(ctx)
	if database.SupportsRowLocks(q) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q.Select("id").First(&models.User{}, id).Error
}

// Create persists a new user row. Associations are not written.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

// Update writes the user's own columns.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Model(user).Omit(clause.Associations).Select(
		"name", "enabled", "account_non_expired", "account_non_locked", "credentials_non_expired",
	).Updates(user).Error
}

// All returns every aggregate ordered by id.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := aggregate(r.db.WithContext(ctx)).Order("id asc").Find(&users).Error
	return users, err
}
