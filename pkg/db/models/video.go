package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/enums"
)

// Video is the relational shape of the video aggregate root. Association sets
// live in join-row tables and media descriptors in sub-row tables referenced
// by nullable foreign keys, mirroring the aggregate's five optional slots.
type Video struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	Title        string       `gorm:"column:title;not null"`
	Description  string       `gorm:"column:description;size:4000"`
	YearLaunched int          `gorm:"column:year_launched;not null"`
	Opened       bool         `gorm:"column:opened;not null"`
	Published    bool         `gorm:"column:published;not null"`
	Rating       enums.Rating `gorm:"column:rating;size:5"`
	Duration     float64      `gorm:"column:duration"`
	CreatedAt    time.Time    `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;not null"`

	VideoMediaID    *uuid.UUID `gorm:"column:video_media_id;type:uuid"`
	TrailerID       *uuid.UUID `gorm:"column:trailer_id;type:uuid"`
	BannerID        *uuid.UUID `gorm:"column:banner_id;type:uuid"`
	ThumbnailID     *uuid.UUID `gorm:"column:thumbnail_id;type:uuid"`
	ThumbnailHalfID *uuid.UUID `gorm:"column:thumbnail_half_id;type:uuid"`

	VideoMedia    *AudioVideoMedia `gorm:"foreignKey:VideoMediaID;references:ID"`
	Trailer       *AudioVideoMedia `gorm:"foreignKey:TrailerID;references:ID"`
	Banner        *ImageMedia      `gorm:"foreignKey:BannerID;references:ID"`
	Thumbnail     *ImageMedia      `gorm:"foreignKey:ThumbnailID;references:ID"`
	ThumbnailHalf *ImageMedia      `gorm:"foreignKey:ThumbnailHalfID;references:ID"`

	Categories  []VideoCategory   `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	Genres      []VideoGenre      `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	CastMembers []VideoCastMember `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}
