// Package video implements the video aggregate and its lifecycle: reference
// validation against the category, genre and cast member domains, the media
// upload pipeline, and the relational store with its preview projection.
package video

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/enums"
)

// Attributes carries every mutable field of a video. Update replaces them
// wholesale; partial merges are not supported.
type Attributes struct {
	Title       string
	Description string
	LaunchYear  int
	Duration    float64
	Opened      bool
	Published   bool
	Rating      enums.Rating
	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// Video is the aggregate root. State is unexported; mutations go through
// Update and the slot setters so updatedAt stays consistent. Instances are
// confined to a single request and never shared across goroutines.
type Video struct {
	id          uuid.UUID
	title       string
	description string
	launchYear  int
	duration    float64
	opened      bool
	published   bool
	rating      enums.Rating
	createdAt   time.Time
	updatedAt   time.Time

	video         *AudioVideoMedia
	trailer       *AudioVideoMedia
	banner        *ImageMedia
	thumbnail     *ImageMedia
	thumbnailHalf *ImageMedia

	categories  map[uuid.UUID]struct{}
	genres      map[uuid.UUID]struct{}
	castMembers map[uuid.UUID]struct{}
}

// NewVideo assigns a fresh id and sets createdAt = updatedAt = now. No
// cross-field validation happens here; malformed commands are rejected
// upstream by the request validators.
func NewVideo(attrs Attributes) *Video {
	now := time.Now().UTC()
	v := &Video{
		id:        uuid.New(),
		createdAt: now,
	}
	v.apply(attrs, now)
	return v
}

// State is the persistence snapshot used to rebuild an aggregate from rows.
type State struct {
	ID            uuid.UUID
	Title         string
	Description   string
	LaunchYear    int
	Duration      float64
	Opened        bool
	Published     bool
	Rating        enums.Rating
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Video         *AudioVideoMedia
	Trailer       *AudioVideoMedia
	Banner        *ImageMedia
	Thumbnail     *ImageMedia
	ThumbnailHalf *ImageMedia
	Categories    []uuid.UUID
	Genres        []uuid.UUID
	CastMembers   []uuid.UUID
}

// Restore rebuilds an aggregate exactly as persisted, without touching
// timestamps.
func Restore(s State) *Video {
	return &Video{
		id:            s.ID,
		title:         s.Title,
		description:   s.Description,
		launchYear:    s.LaunchYear,
		duration:      s.Duration,
		opened:        s.Opened,
		published:     s.Published,
		rating:        s.Rating,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		video:         copyAudioVideo(s.Video),
		trailer:       copyAudioVideo(s.Trailer),
		banner:        copyImage(s.Banner),
		thumbnail:     copyImage(s.Thumbnail),
		thumbnailHalf: copyImage(s.ThumbnailHalf),
		categories:    toSet(s.Categories),
		genres:        toSet(s.Genres),
		castMembers:   toSet(s.CastMembers),
	}
}

// Update replaces every mutable field and all three association sets, then
// bumps updatedAt. Media slots are untouched.
func (v *Video) Update(attrs Attributes) {
	v.apply(attrs, time.Now().UTC())
}

func (v *Video) apply(attrs Attributes, now time.Time) {
	v.title = attrs.Title
	v.description = attrs.Description
	v.launchYear = attrs.LaunchYear
	v.duration = attrs.Duration
	v.opened = attrs.Opened
	v.published = attrs.Published
	v.rating = attrs.Rating
	v.categories = toSet(attrs.Categories)
	v.genres = toSet(attrs.Genres)
	v.castMembers = toSet(attrs.CastMembers)
	v.updatedAt = now
}

// SetMedia attaches a descriptor to the slot named by mediaType and bumps
// updatedAt. The caller guarantees the backing blob already exists; that is
// the media pipeline's contract, not the aggregate's.
func (v *Video) SetMedia(mediaType enums.MediaType, audioVideo *AudioVideoMedia, image *ImageMedia) {
	switch mediaType {
	case enums.MediaTypeVideo:
		v.video = copyAudioVideo(audioVideo)
	case enums.MediaTypeTrailer:
		v.trailer = copyAudioVideo(audioVideo)
	case enums.MediaTypeBanner:
		v.banner = copyImage(image)
	case enums.MediaTypeThumbnail:
		v.thumbnail = copyImage(image)
	case enums.MediaTypeThumbnailHalf:
		v.thumbnailHalf = copyImage(image)
	default:
		return
	}
	v.updatedAt = time.Now().UTC()
}

func (v *Video) SetVideo(m *AudioVideoMedia)    { v.SetMedia(enums.MediaTypeVideo, m, nil) }
func (v *Video) SetTrailer(m *AudioVideoMedia)  { v.SetMedia(enums.MediaTypeTrailer, m, nil) }
func (v *Video) SetBanner(m *ImageMedia)        { v.SetMedia(enums.MediaTypeBanner, nil, m) }
func (v *Video) SetThumbnail(m *ImageMedia)     { v.SetMedia(enums.MediaTypeThumbnail, nil, m) }
func (v *Video) SetThumbnailHalf(m *ImageMedia) { v.SetMedia(enums.MediaTypeThumbnailHalf, nil, m) }

func (v *Video) ID() uuid.UUID        { return v.id }
func (v *Video) Title() string        { return v.title }
func (v *Video) Description() string  { return v.description }
func (v *Video) LaunchYear() int      { return v.launchYear }
func (v *Video) Duration() float64    { return v.duration }
func (v *Video) Opened() bool         { return v.opened }
func (v *Video) Published() bool      { return v.published }
func (v *Video) Rating() enums.Rating { return v.rating }
func (v *Video) CreatedAt() time.Time { return v.createdAt }
func (v *Video) UpdatedAt() time.Time { return v.updatedAt }

// Media slot getters return copies so callers cannot mutate aggregate state.

func (v *Video) Video() *AudioVideoMedia    { return copyAudioVideo(v.video) }
func (v *Video) Trailer() *AudioVideoMedia  { return copyAudioVideo(v.trailer) }
func (v *Video) Banner() *ImageMedia        { return copyImage(v.banner) }
func (v *Video) Thumbnail() *ImageMedia     { return copyImage(v.thumbnail) }
func (v *Video) ThumbnailHalf() *ImageMedia { return copyImage(v.thumbnailHalf) }

// Association getters return sorted copies. Sets carry no meaningful order;
// sorting just keeps the output stable.

func (v *Video) Categories() []uuid.UUID  { return fromSet(v.categories) }
func (v *Video) Genres() []uuid.UUID      { return fromSet(v.genres) }
func (v *Video) CastMembers() []uuid.UUID { return fromSet(v.castMembers) }

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func fromSet(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

func copyAudioVideo(m *AudioVideoMedia) *AudioVideoMedia {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func copyImage(m *ImageMedia) *ImageMedia {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}
