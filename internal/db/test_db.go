package db

import (
	"fmt"
	"log"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	err = db.AutoMigrate(
		&model.Category{},
		&model.Collection{},
		&model.RingType{},
		&model.Gemstone{},
		&model.StoneType{},
		&model.Metal{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductVideo{},
		&model.ProductVariant{},
		&model.ProductSize{},
		&model.WatchBrand{},
		&model.WatchCollection{},
		&model.Watch{},
		&model.WatchImage{},
		&model.WatchSpecification{},
		&model.WatchVariant{},
		&model.AdminUser{},
		&model.AdminSession{},
		&model.User{},
		&model.RefreshToken{},
		&model.Favorite{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}
