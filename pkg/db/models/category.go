package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a catalog category. DeletedAt is a domain deactivation marker,
// not a soft-delete column; rows are removed for real on delete.
type Category struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description;size:4000"`
	Active      bool       `gorm:"column:active;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null"`
	DeletedAt   *time.Time `gorm:"column:deleted_at"`
}
