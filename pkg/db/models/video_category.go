package models

import "github.com/google/uuid"

type VideoCategory struct {
	VideoID    uuid.UUID `gorm:"column:video_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey;index:idx_video_categories_category_id"`
}

func (VideoCategory) TableName() string {
	return "video_categories"
}
