// Package database opens and migrates the SQLite store shared by all modules.
package database

import (
	"fmt"
	"strings"

	"github.com/example/storefront-demo/config"
	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/domain/customer"
	"github.com/example/storefront-demo/domain/sale"
	"github.com/example/storefront-demo/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// busyTimeoutMillis bounds how long a writer waits on a locked database
// before SQLite reports SQLITE_BUSY.
const busyTimeoutMillis = 5000

// Open connects to the SQLite database described by cfg.
//
// SQLite allows a single writer, so the pool is capped at one connection.
// Every transaction therefore serializes, and a ":memory:" database stays
// the same database for the lifetime of the handle.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(DSN(cfg.Path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// DSN appends the connection parameters every storefront database needs.
func DSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_foreign_keys=on&_busy_timeout=%d", path, sep, busyTimeoutMillis)
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&catalog.Product{},
		&customer.Customer{},
		&sale.Sale{},
		&sale.SaleDetail{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// OpenMemory returns a migrated in-memory database. Intended for tests.
func OpenMemory() (*gorm.DB, error) {
	db, err := Open(config.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
