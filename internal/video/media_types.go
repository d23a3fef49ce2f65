package video

import (
	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/enums"
)

// Resource is an uploaded payload before it reaches the blob store. Checksum
// is a CRC32C digest of Content, base64-encoded.
type Resource struct {
	Content     []byte
	Checksum    string
	ContentType string
	Name        string
}

// AudioVideoMedia describes a stored video or trailer asset. RawLocation is
// the key the upload landed on; EncodedLocation stays empty until a future
// encoding step fills it and flips Status to COMPLETED.
type AudioVideoMedia struct {
	ID              uuid.UUID
	Name            string
	Checksum        string
	RawLocation     string
	EncodedLocation string
	Status          enums.MediaStatus
}

// NewAudioVideoMedia builds a descriptor for a freshly uploaded asset.
func NewAudioVideoMedia(name, checksum, rawLocation string) *AudioVideoMedia {
	return &AudioVideoMedia{
		ID:          uuid.New(),
		Name:        name,
		Checksum:    checksum,
		RawLocation: rawLocation,
		Status:      enums.MediaStatusPending,
	}
}

// Equals is content-addressed: two descriptors match when checksum and raw
// location match, regardless of id or display name.
func (m *AudioVideoMedia) Equals(other *AudioVideoMedia) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Checksum == other.Checksum && m.RawLocation == other.RawLocation
}

// ImageMedia describes a stored banner or thumbnail asset.
type ImageMedia struct {
	ID       uuid.UUID
	Name     string
	Checksum string
	Location string
}

// NewImageMedia builds a descriptor for a freshly uploaded image.
func NewImageMedia(name, checksum, location string) *ImageMedia {
	return &ImageMedia{
		ID:       uuid.New(),
		Name:     name,
		Checksum: checksum,
		Location: location,
	}
}

// Equals is content-addressed on checksum and location.
func (m *ImageMedia) Equals(other *ImageMedia) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Checksum == other.Checksum && m.Location == other.Location
}
