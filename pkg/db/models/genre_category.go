package models

import "github.com/google/uuid"

type GenreCategory struct {
	GenreID    uuid.UUID `gorm:"column:genre_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey;index:idx_genre_categories_category_id"`
}

func (GenreCategory) TableName() string {
	return "genre_categories"
}
