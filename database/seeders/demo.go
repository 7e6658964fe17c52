package seeders

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/pkg/auth"
)

// DemoEmail and DemoPassword are the credentials of the seeded customer.
const (
	DemoEmail    = "demo@market.local"
	DemoPassword = "demo-password"
)

func init() {
	Register("products", SeedProducts)
	Register("users", SeedUsers)
}

var catalogue = []struct {
	name  string
	price string
	stock int
}{
	{"Espresso beans 1kg", "24.90", 40},
	{"Pour-over kettle", "59.00", 12},
	{"Burr grinder", "129.99", 5},
	{"Paper filters (100)", "4.50", 200},
	{"Ceramic mug", "12.00", 0},
}

// SeedProducts inserts the demo catalogue, skipping names already present.
func SeedProducts(db *gorm.DB) error {
	for _, c := range catalogue {
		p := models.Product{Name: c.name, Price: decimal.RequireFromString(c.price), Stock: c.stock}
		if err := db.Where(models.Product{Name: c.name}).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates the demo customer unless it exists.
func SeedUsers(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", DemoEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:                  "Demo Customer",
		Email:                 DemoEmail,
		Password:              hash,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}).Error
}
