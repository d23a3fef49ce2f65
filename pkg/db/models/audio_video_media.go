package models

import (
	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/enums"
)

// AudioVideoMedia is a processable media descriptor (video or trailer slot).
// RawLocation is the uploaded object key; EncodedLocation is filled once an
// encoder finishes and Status reaches COMPLETED.
type AudioVideoMedia struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name            string            `gorm:"column:name;not null"`
	Checksum        string            `gorm:"column:checksum;not null"`
	RawLocation     string            `gorm:"column:raw_location;not null"`
	EncodedLocation string            `gorm:"column:encoded_location"`
	Status          enums.MediaStatus `gorm:"column:status;size:20;not null"`
}

func (AudioVideoMedia) TableName() string {
	return "audio_video_media"
}
