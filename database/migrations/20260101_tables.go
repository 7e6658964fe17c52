package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_products_table", table{model: &models.Product{}, name: "products"})
	migration.Register("20260101000001_create_users_table", table{model: &models.User{}, name: "users"})
	migration.Register("20260101000002_create_carts_table", table{model: &models.Cart{}, name: "carts"})
	migration.Register("20260101000003_create_cart_entries_table", table{model: &models.CartEntry{}, name: "cart_entries"})
	migration.Register("20260101000004_create_wishlists_table", table{
		model: &models.Wishlist{},
		name:  "wishlists",
		join:  "wishlist_products",
	})
}

// table creates a model's table from its gorm tags. join names a
// many2many table that AutoMigrate creates alongside it.
type table struct {
	model interface{}
	name  string
	join  string
}

func (t table) Up(db *gorm.DB) error {
	return db.AutoMigrate(t.model)
}

func (t table) Down(db *gorm.DB) error {
	if t.join != "" {
		if err := db.Migrator().DropTable(t.join); err != nil {
			return err
		}
	}
	return db.Migrator().DropTable(t.name)
}
