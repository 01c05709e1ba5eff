// Package rdb is a GORM/SQLite stand-in for the Flywheel management API,
// used for offline runs and rehearsals of a project file.
package rdb

import (
	"fmt"
	"strings"

	"github.com/naccdata/flywheel-extensions/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenFromURL opens a GORM DB based on a simple url string.
// Supported:
//   - sqlite:<dsn>   e.g., sqlite:./flywheel.db or sqlite::memory:
//   - sqlite3:<dsn>  alias of sqlite
func OpenFromURL(dbURL string) (*gorm.DB, error) {
	var dsn string
	switch {
	case strings.HasPrefix(dbURL, "sqlite:"):
		dsn = strings.TrimPrefix(dbURL, "sqlite:")
	case strings.HasPrefix(dbURL, "sqlite3:"):
		dsn = strings.TrimPrefix(dbURL, "sqlite3:")
	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
	if dsn == "" {
		dsn = "./flywheel.db"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	// every sqlite connection to :memory: opens its own empty database
	if strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// AutoMigrate applies schema migrations for all RDB models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&GroupRecord{}, &ProjectRecord{})
}

// NewRepositories returns the repository set backed by db.
func NewRepositories(db *gorm.DB) *domain.Repositories {
	return &domain.Repositories{
		Group:   NewGroupRepository(db),
		Project: NewProjectRepository(db),
	}
}
