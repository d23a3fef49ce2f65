package enums

import "fmt"

// MediaType names the slot an uploaded asset fills for a video.
type MediaType string

const (
	MediaTypeVideo         MediaType = "video"
	MediaTypeTrailer       MediaType = "trailer"
	MediaTypeBanner        MediaType = "banner"
	MediaTypeThumbnail     MediaType = "thumbnail"
	MediaTypeThumbnailHalf MediaType = "thumbnail_half"
)

// MediaTypes lists all slots in the fixed order uploads are processed.
var MediaTypes = []MediaType{
	MediaTypeVideo,
	MediaTypeTrailer,
	MediaTypeBanner,
	MediaTypeThumbnail,
	MediaTypeThumbnailHalf,
}

// String returns the literal string for the type.
func (m MediaType) String() string {
	return string(m)
}

// IsValid reports whether the type is known.
func (m MediaType) IsValid() bool {
	for _, candidate := range MediaTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMediaType converts raw input into a MediaType.
func ParseMediaType(value string) (MediaType, error) {
	for _, candidate := range MediaTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media type %q", value)
}
