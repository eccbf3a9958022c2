package database

import (
	"fmt"
	"log"
	"time"

	"go-inventory-admin/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database and syncs the schema. A MySQL DSN selects
// the production driver (waiting for the server to come up); an empty
// DSN falls back to a local SQLite file.
func Connect(dsn, sqlitePath string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if dsn != "" {
		// Wait for the DB to be ready
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			})
			if err == nil {
				break
			}
			log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate syncs the schema for every collection the store owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.StockMovement{},
		&models.Catalogue{},
		&models.CatalogueItem{},
		&models.ActivityLog{},
		&models.Settings{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// GetSettings loads the singleton settings row, falling back to defaults
// when it is absent (first boot before seeding).
func GetSettings(db *gorm.DB) models.Settings {
	var s models.Settings
	if err := db.First(&s, 1).Error; err != nil {
		return DefaultSettings()
	}
	return s
}

// SaveSettings replaces the singleton settings row.
func SaveSettings(db *gorm.DB, s models.Settings) error {
	s.ID = 1
	return db.Save(&s).Error
}
