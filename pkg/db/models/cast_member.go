package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/enums"
)

type CastMember struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Name      string               `gorm:"column:name;not null"`
	Type      enums.CastMemberType `gorm:"column:type;size:20;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;not null"`
	UpdatedAt time.Time            `gorm:"column:updated_at;not null"`
}
