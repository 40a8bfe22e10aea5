package repository

import (
	"fmt"

	"pdv/internal/config"
	"pdv/internal/infra"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Backends are the connections opened for the selected storage driver.
// Fields are nil when the driver does not use them.
type Backends struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// Close releases any open connection.
func (b *Backends) Close() {
	if b.Redis != nil {
		_ = b.Redis.Close()
	}
	if b.DB != nil {
		if sqlDB, err := b.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// OpenStateBlobRepository builds the repository named by cfg.StorageDriver.
func OpenStateBlobRepository(cfg *config.Config) (StateBlobRepository, *Backends, error) {
	b := &Backends{}
	switch cfg.StorageDriver {
	case "memory":
		return NewMemoryBlobRepository(), b, nil
	case "", "file":
		return NewFileBlobRepository(cfg.DataDir), b, nil
	case "redis":
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis storage: %w", err)
		}
		b.Redis = rdb
		return NewRedisBlobRepository(rdb), b, nil
	case "postgres":
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres storage: %w", err)
		}
		b.DB = db
		return NewGormBlobRepository(db), b, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
