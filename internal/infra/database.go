package infra

import (
	"fmt"

	"pdv/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, then makes sure the
// state_blobs table exists. The schema is a single table, so AutoMigrate is enough.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One writer per process; a small pool is plenty.
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the storage schema. Idempotent.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.StateBlob{}); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
