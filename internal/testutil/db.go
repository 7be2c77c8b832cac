// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"storefront/internal/infra"
)

// OpenDB returns a migrated in-memory database private to the test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: infra.NewGormLogger(zaptest.NewLogger(t), logger.Error),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps concurrent test writers from tripping SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.AutoMigrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
