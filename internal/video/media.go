package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/config"
	"github.com/codelabs/catalog-backend/pkg/enums"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/storage"
)

// Resources uploads, fetches and clears the blobs behind media descriptors.
// Keys are derived from configured templates so every asset of one video
// lands under a single prefix, which makes bulk deletion a prefix listing.
type Resources struct {
	store           storage.Store
	locationPattern string
	filenamePattern string
}

// NewResources builds the pipeline over the given blob store.
func NewResources(store storage.Store, cfg config.MediaConfig) (*Resources, error) {
	if store == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if !strings.Contains(cfg.LocationPattern, "{videoId}") {
		return nil, fmt.Errorf("location pattern %q missing {videoId} placeholder", cfg.LocationPattern)
	}
	if !strings.Contains(cfg.FilenamePattern, "{type}") {
		return nil, fmt.Errorf("filename pattern %q missing {type} placeholder", cfg.FilenamePattern)
	}
	return &Resources{
		store:           store,
		locationPattern: cfg.LocationPattern,
		filenamePattern: cfg.FilenamePattern,
	}, nil
}

func (r *Resources) folder(videoID uuid.UUID) string {
	return strings.ReplaceAll(r.locationPattern, "{videoId}", videoID.String())
}

func (r *Resources) filename(mediaType enums.MediaType) string {
	return strings.ReplaceAll(r.filenamePattern, "{type}", mediaType.String())
}

func (r *Resources) key(videoID uuid.UUID, mediaType enums.MediaType) string {
	return r.folder(videoID) + "/" + r.filename(mediaType)
}

// StoreAudioVideo uploads the resource to the video or trailer slot and
// returns a descriptor pointing at the stored key. Status starts PENDING;
// encoding is a separate, future step.
func (r *Resources) StoreAudioVideo(ctx context.Context, videoID uuid.UUID, mediaType enums.MediaType, res Resource) (*AudioVideoMedia, error) {
	key := r.key(videoID, mediaType)
	if err := r.put(ctx, key, res); err != nil {
		return nil, err
	}
	return NewAudioVideoMedia(res.Name, res.Checksum, key), nil
}

// StoreImage uploads the resource to an image slot and returns its descriptor.
func (r *Resources) StoreImage(ctx context.Context, videoID uuid.UUID, mediaType enums.MediaType, res Resource) (*ImageMedia, error) {
	key := r.key(videoID, mediaType)
	if err := r.put(ctx, key, res); err != nil {
		return nil, err
	}
	return NewImageMedia(res.Name, res.Checksum, key), nil
}

func (r *Resources) put(ctx context.Context, key string, res Resource) error {
	return r.store.Put(ctx, storage.Object{
		Key:         key,
		Content:     res.Content,
		ContentType: res.ContentType,
		Metadata: map[string]string{
			"name":     res.Name,
			"checksum": res.Checksum,
		},
	})
}

// GetResource fetches the blob for one slot and rebuilds the Resource from
// the stored bytes and metadata.
func (r *Resources) GetResource(ctx context.Context, videoID uuid.UUID, mediaType enums.MediaType) (*Resource, error) {
	obj, err := r.store.Get(ctx, r.key(videoID, mediaType))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("Resource %s not found for video %s", mediaType, videoID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("fetching resource %s for video %s", mediaType, videoID))
	}

	return &Resource{
		Content:     obj.Content,
		Checksum:    obj.Metadata["checksum"],
		ContentType: obj.ContentType,
		Name:        obj.Metadata["name"],
	}, nil
}

// ClearResources deletes every blob under the video's prefix. Used on
// explicit delete and on create-path rollback after a failed upload.
func (r *Resources) ClearResources(ctx context.Context, videoID uuid.UUID) error {
	prefix := r.folder(videoID) + "/"

	keys, err := r.store.List(ctx, prefix)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("listing resources for video %s", videoID))
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.store.Delete(ctx, keys...); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("clearing resources for video %s", videoID))
	}
	return nil
}
