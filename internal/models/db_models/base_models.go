package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel keeps unix-second timestamps. Callers may preset ID (deterministic
// ids for webhook-created rows) or CreatedAt (imports); gorm fills whatever is zero.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedAt int64          `gorm:"autoCreateTime"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
