package video

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/checksum"
	"github.com/codelabs/catalog-backend/pkg/config"
	"github.com/codelabs/catalog-backend/pkg/enums"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/storage/memory"
)

func newTestResources(t *testing.T) (*Resources, *memory.Store) {
	t.Helper()
	store := memory.New()
	resources, err := NewResources(store, config.MediaConfig{
		LocationPattern: "videoId-{videoId}",
		FilenamePattern: "type-{type}",
	})
	if err != nil {
		t.Fatalf("building resources: %v", err)
	}
	return resources, store
}

func TestNewResourcesRejectsBadPatterns(t *testing.T) {
	t.Parallel()

	_, err := NewResources(memory.New(), config.MediaConfig{
		LocationPattern: "no-placeholder",
		FilenamePattern: "type-{type}",
	})
	if err == nil {
		t.Fatal("expected error for location pattern without {videoId}")
	}
}

func TestStoreAudioVideoDerivesKeyFromTemplates(t *testing.T) {
	t.Parallel()

	resources, store := newTestResources(t)
	ctx := context.Background()
	videoID := uuid.New()

	content := []byte("raw mp4 bytes")
	res := Resource{
		Content:     content,
		Checksum:    checksum.CRC32C(content),
		ContentType: "video/mp4",
		Name:        "movie.mp4",
	}

	media, err := resources.StoreAudioVideo(ctx, videoID, enums.MediaTypeVideo, res)
	if err != nil {
		t.Fatalf("store audio video: %v", err)
	}

	wantKey := "videoId-" + videoID.String() + "/type-video"
	if media.RawLocation != wantKey {
		t.Fatalf("raw location %q, want %q", media.RawLocation, wantKey)
	}
	if media.Status != enums.MediaStatusPending {
		t.Fatalf("status %s, want PENDING", media.Status)
	}
	if media.Checksum != res.Checksum {
		t.Fatalf("checksum %q, want %q", media.Checksum, res.Checksum)
	}

	obj, err := store.Get(ctx, wantKey)
	if err != nil {
		t.Fatalf("blob missing at derived key: %v", err)
	}
	if obj.Metadata["name"] != "movie.mp4" || obj.Metadata["checksum"] != res.Checksum {
		t.Fatalf("object metadata not attached: %v", obj.Metadata)
	}
}

func TestGetResourceRoundTrip(t *testing.T) {
	t.Parallel()

	resources, _ := newTestResources(t)
	ctx := context.Background()
	videoID := uuid.New()

	content := []byte("banner png")
	in := Resource{
		Content:     content,
		Checksum:    checksum.CRC32C(content),
		ContentType: "image/png",
		Name:        "banner.png",
	}
	if _, err := resources.StoreImage(ctx, videoID, enums.MediaTypeBanner, in); err != nil {
		t.Fatalf("store image: %v", err)
	}

	out, err := resources.GetResource(ctx, videoID, enums.MediaTypeBanner)
	if err != nil {
		t.Fatalf("get resource: %v", err)
	}
	if string(out.Content) != string(in.Content) || out.Checksum != in.Checksum ||
		out.ContentType != in.ContentType || out.Name != in.Name {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestGetResourceMissingSlotIsNotFound(t *testing.T) {
	t.Parallel()

	resources, _ := newTestResources(t)

	_, err := resources.GetResource(context.Background(), uuid.New(), enums.MediaTypeTrailer)
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestClearResourcesDeletesWholePrefix(t *testing.T) {
	t.Parallel()

	resources, store := newTestResources(t)
	ctx := context.Background()
	target := uuid.New()
	other := uuid.New()

	for _, mediaType := range []enums.MediaType{enums.MediaTypeVideo, enums.MediaTypeBanner} {
		res := Resource{Content: []byte("x"), Checksum: "sum", Name: "x"}
		var err error
		if mediaType == enums.MediaTypeVideo {
			_, err = resources.StoreAudioVideo(ctx, target, mediaType, res)
		} else {
			_, err = resources.StoreImage(ctx, target, mediaType, res)
		}
		if err != nil {
			t.Fatalf("seeding %s: %v", mediaType, err)
		}
	}
	if _, err := resources.StoreImage(ctx, other, enums.MediaTypeBanner, Resource{Content: []byte("y"), Checksum: "sum", Name: "y"}); err != nil {
		t.Fatalf("seeding other video: %v", err)
	}

	if err := resources.ClearResources(ctx, target); err != nil {
		t.Fatalf("clear resources: %v", err)
	}

	keys, err := store.List(ctx, "videoId-"+target.String()+"/")
	if err != nil {
		t.Fatalf("listing after clear: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected empty prefix, found %v", keys)
	}
	if store.Len() != 1 {
		t.Fatalf("other video's blob must survive, store has %d objects", store.Len())
	}
}

func TestClearResourcesEmptyPrefixIsNoop(t *testing.T) {
	t.Parallel()

	resources, _ := newTestResources(t)

	if err := resources.ClearResources(context.Background(), uuid.New()); err != nil {
		t.Fatalf("expected nil for empty prefix, got %v", err)
	}
}
