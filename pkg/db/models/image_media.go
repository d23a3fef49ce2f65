package models

import "github.com/google/uuid"

// ImageMedia is a static image descriptor (banner and thumbnail slots).
type ImageMedia struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name     string    `gorm:"column:name;not null"`
	Checksum string    `gorm:"column:checksum;not null"`
	Location string    `gorm:"column:location;not null"`
}

func (ImageMedia) TableName() string {
	return "image_media"
}
