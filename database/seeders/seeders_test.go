package seeders_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/database/seeders"
	"github.com/shashiranjanraj/market/pkg/auth"
	"github.com/shashiranjanraj/market/pkg/database"
)

func TestRunAllIsRepeatable(t *testing.T) {
	db, err := database.Open("sqlite", "file:seed?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}))

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(db, &out))
	require.NoError(t, seeders.RunAll(db, &out))
	assert.Contains(t, out.String(), "Seeding: products")

	var products int64
	db.Model(&models.Product{}).Count(&products)
	assert.Equal(t, int64(5), products)

	var u models.User
	require.NoError(t, db.Where("email = ?", seeders.DemoEmail).First(&u).Error)
	assert.True(t, auth.CheckPassword(u.Password, seeders.DemoPassword))
	assert.NoError(t, auth.CheckAccount(u.Credentials()))
}
