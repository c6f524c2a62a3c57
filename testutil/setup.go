// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soraien/raidhall/config"
	"github.com/soraien/raidhall/utils"
)

// SetupTestDB creates an in-memory SQLite database with foreign keys
// enabled, runs migrations and seeds defaults. A single connection keeps
// every query on the same in-memory store.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if utils.Logger == nil {
		utils.Logger = zap.NewNop()
		utils.Sugar = utils.Logger.Sugar()
	}
	// each test gets its own database; a live local Redis must not leak
	// cached rows between them
	utils.DisableCache()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "SetupTestDB: open")

	sqlDB, err := db.DB()
	require.NoError(t, err, "SetupTestDB: sql.DB")
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db), "SetupTestDB: migrate")
	return db
}

// NopLogger returns a logger that discards everything.
func NopLogger() *zap.Logger { return zap.NewNop() }
