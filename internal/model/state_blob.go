package model

import "time"

// StateBlob is the single keyed row the postgres storage driver keeps per store.
type StateBlob struct {
	Key       string `gorm:"primaryKey;type:varchar(120)"`
	Data      string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (state_blobs is already plural).
func (StateBlob) TableName() string { return "state_blobs" }
