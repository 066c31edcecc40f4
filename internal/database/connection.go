package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lyhu_portal/internal/models"
)

const sqlitePrefix = "sqlite://"

// Initialize opens the slot database. postgres:// URLs use the postgres
// driver, sqlite://<path> (or sqlite://:memory:) the pure-Go sqlite driver.
func Initialize(databaseURL string, logLevel logger.LogLevel, log logrus.FieldLogger) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	dialector, memory := open(databaseURL)

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if memory {
		// every sqlite connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.WithField("driver", dialector.Name()).Info("Database connected and migrated successfully")
	return db, nil
}

func open(databaseURL string) (gorm.Dialector, bool) {
	if strings.HasPrefix(databaseURL, sqlitePrefix) {
		path := strings.TrimPrefix(databaseURL, sqlitePrefix)
		return sqlite.Open(path), path == ":memory:"
	}
	return postgres.Open(databaseURL), false
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.StorageSlot{})
}
