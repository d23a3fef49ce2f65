package models

import "github.com/google/uuid"

type VideoGenre struct {
	VideoID uuid.UUID `gorm:"column:video_id;type:uuid;primaryKey"`
	GenreID uuid.UUID `gorm:"column:genre_id;type:uuid;primaryKey;index:idx_video_genres_genre_id"`
}

func (VideoGenre) TableName() string {
	return "video_genres"
}
