package config

import (
	"fmt"

	"github.com/longbourn/pemberley/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the database connection and migrates the schema. The returned
// handle is passed explicitly to the resource handlers; no package-level
// database state is kept.
func InitDB(config *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Book{},
		&models.BookImage{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return db, nil
}
