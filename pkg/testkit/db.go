// Package testkit holds helpers shared by the package tests: a migrated
// in-memory database and JSON request helpers.
package testkit

import (
	"bytes"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/market/database/migrations"
	"github.com/shashiranjanraj/market/pkg/database"
	"github.com/shashiranjanraj/market/pkg/migration"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with the full schema
// applied. It is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	_, err = migration.New(db, migration.WithOutput(&bytes.Buffer{})).Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
