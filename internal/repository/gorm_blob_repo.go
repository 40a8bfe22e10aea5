package repository

import (
	"context"
	"errors"
	"time"

	"pdv/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormBlobRepo struct{ db *gorm.DB }

// NewGormBlobRepository keeps blobs in the state_blobs table, one row per key.
func NewGormBlobRepository(db *gorm.DB) StateBlobRepository {
	return &gormBlobRepo{db: db}
}

func (r *gormBlobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var row model.StateBlob
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Data), nil
}

func (r *gormBlobRepo) Put(ctx context.Context, key string, data []byte) error {
	row := model.StateBlob{Key: key, Data: string(data), UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}
