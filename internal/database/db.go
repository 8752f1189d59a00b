package database

import (
	"log"

	"commerce/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
// TranslateError maps driver duplicate-key/FK errors onto gorm sentinels so
// the repository layer stays driver-agnostic.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate creates/updates the schema for every model, foreign keys included.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Role{},
		&model.Permission{},
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.Promotion{},
		&model.Ville{},
		&model.Secteur{},
		&model.Commercial{},
		&model.Client{},
		&model.Livreur{},
		&model.Transporteur{},
		&model.StockEntry{},
		&model.AuditLog{},
	)
}
