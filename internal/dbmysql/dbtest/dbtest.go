// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"gomentor/internal/dbmysql"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbmysql.Migrate(db))
	return db
}

// CreateUser inserts an active user with a throwaway password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string, staff bool) *dbmysql.User {
	t.Helper()

	user := &dbmysql.User{
		Email:        fmt.Sprintf("%s@example.com", username),
		Username:     username,
		PasswordHash: "x",
		IsActive:     true,
		IsStaff:      staff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
