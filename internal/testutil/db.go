// Package testutil provides an isolated in-memory database for tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"supanos/internal/db"
)

// NewDB opens a fresh migrated in-memory SQLite database that lives for the
// duration of the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gormDB, err := db.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database consistent.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() { db.Close(gormDB) })
	return gormDB
}
