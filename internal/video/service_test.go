package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/enums"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/logger"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

type stubRepo struct {
	videos   map[uuid.UUID]*Video
	saveErr  error
	saved    int
	deleted  []uuid.UUID
	lastList SearchQuery
}

func newStubRepo() *stubRepo {
	return &stubRepo{videos: map[uuid.UUID]*Video{}}
}

func (r *stubRepo) Save(_ context.Context, v *Video) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved++
	r.videos[v.ID()] = v
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (*Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Video with ID %s was not found", id))
	}
	return v, nil
}

func (r *stubRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.videos, id)
	return nil
}

func (r *stubRepo) ListVideos(_ context.Context, q SearchQuery) (*pagination.Page[VideoPreview], error) {
	r.lastList = q
	return pagination.NewPage(q.Page.Normalize("title"), 0, []VideoPreview{}), nil
}

type stubMedia struct {
	failOn  map[enums.MediaType]error
	stored  []enums.MediaType
	cleared []uuid.UUID
}

func newStubMedia() *stubMedia {
	return &stubMedia{failOn: map[enums.MediaType]error{}}
}

func (m *stubMedia) key(videoID uuid.UUID, mediaType enums.MediaType) string {
	return "videoId-" + videoID.String() + "/type-" + mediaType.String()
}

func (m *stubMedia) StoreAudioVideo(_ context.Context, videoID uuid.UUID, mediaType enums.MediaType, res Resource) (*AudioVideoMedia, error) {
	if err := m.failOn[mediaType]; err != nil {
		return nil, err
	}
	m.stored = append(m.stored, mediaType)
	return NewAudioVideoMedia(res.Name, res.Checksum, m.key(videoID, mediaType)), nil
}

func (m *stubMedia) StoreImage(_ context.Context, videoID uuid.UUID, mediaType enums.MediaType, res Resource) (*ImageMedia, error) {
	if err := m.failOn[mediaType]; err != nil {
		return nil, err
	}
	m.stored = append(m.stored, mediaType)
	return NewImageMedia(res.Name, res.Checksum, m.key(videoID, mediaType)), nil
}

func (m *stubMedia) GetResource(_ context.Context, videoID uuid.UUID, mediaType enums.MediaType) (*Resource, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound,
		fmt.Sprintf("Resource %s not found for video %s", mediaType, videoID))
}

func (m *stubMedia) ClearResources(_ context.Context, videoID uuid.UUID) error {
	m.cleared = append(m.cleared, videoID)
	return nil
}

type stubRefs struct {
	aggregate string
	existing  map[uuid.UUID]bool
}

func allowRefs(aggregate string, ids ...uuid.UUID) *stubRefs {
	existing := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return &stubRefs{aggregate: aggregate, existing: existing}
}

func (s *stubRefs) Aggregate() string { return s.aggregate }

func (s *stubRefs) ExistsByIDs(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	for _, id := range ids {
		if s.existing[id] {
			found = append(found, id)
		}
	}
	return found, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "catalog-test", Output: io.Discard})
}

type serviceFixture struct {
	service Service
	repo    *stubRepo
	media   *stubMedia

	filmes    uuid.UUID
	acao      uuid.UUID
	vinDiesel uuid.UUID
	rauan     uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		repo:      newStubRepo(),
		media:     newStubMedia(),
		filmes:    uuid.New(),
		acao:      uuid.New(),
		vinDiesel: uuid.New(),
		rauan:     uuid.New(),
	}

	svc, err := NewService(
		f.repo,
		f.media,
		allowRefs("categories", f.filmes),
		allowRefs("genres", f.acao),
		allowRefs("cast members", f.vinDiesel, f.rauan),
		testLogger(),
	)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	f.service = svc
	return f
}

func TestCreateVideoWithMedia(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	content := []byte("movie bytes")
	input := Input{
		Attributes: Attributes{
			Title:       "Corrida Mortal",
			Description: "action movie",
			LaunchYear:  2008,
			Duration:    105.3,
			Opened:      true,
			Rating:      enums.RatingAge16,
			Categories:  []uuid.UUID{f.filmes},
			Genres:      []uuid.UUID{f.acao},
			CastMembers: []uuid.UUID{f.vinDiesel, f.rauan},
		},
		Resources: map[enums.MediaType]*Resource{
			enums.MediaTypeVideo: {Content: content, Checksum: "03fe62de", ContentType: "video/mp4", Name: "corrida.mp4"},
		},
	}

	v, err := f.service.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sameIDSet(t, v.Categories(), input.Categories)
	sameIDSet(t, v.Genres(), input.Genres)
	sameIDSet(t, v.CastMembers(), input.CastMembers)

	media := v.Video()
	if media == nil {
		t.Fatal("video slot not attached")
	}
	if media.Checksum != "03fe62de" {
		t.Fatalf("checksum %q, want 03fe62de", media.Checksum)
	}
	wantLocation := "videoId-" + v.ID().String() + "/type-video"
	if media.RawLocation != wantLocation {
		t.Fatalf("raw location %q, want %q", media.RawLocation, wantLocation)
	}
	if f.repo.saved != 1 {
		t.Fatalf("expected one save, got %d", f.repo.saved)
	}
	if len(f.media.cleared) != 0 {
		t.Fatal("no cleanup expected on success")
	}
}

func TestCreateVideoMissingCategoryFailsBeforeAnyWrite(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	missing := uuid.New()

	_, err := f.service.Create(context.Background(), Input{
		Attributes: Attributes{
			Title:      "ghost refs",
			Rating:     enums.RatingFree,
			Categories: []uuid.UUID{missing},
			Genres:     []uuid.UUID{f.acao},
		},
		Resources: map[enums.MediaType]*Resource{
			enums.MediaTypeVideo: {Content: []byte("x"), Checksum: "s", Name: "x"},
		},
	})

	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
	if !strings.Contains(domainErr.Message(), "Some categories could not be found: "+missing.String()) {
		t.Fatalf("unexpected message %q", domainErr.Message())
	}
	if f.repo.saved != 0 || len(f.media.stored) != 0 || len(f.media.cleared) != 0 {
		t.Fatal("validation failure must abort before any upload or write")
	}
}

func TestCreateVideoTrailerUploadFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	f.media.failOn[enums.MediaTypeTrailer] = errors.New("bucket unavailable")

	_, err := f.service.Create(context.Background(), Input{
		Attributes: Attributes{
			Title:      "partial upload",
			Rating:     enums.RatingAge12,
			Categories: []uuid.UUID{f.filmes},
		},
		Resources: map[enums.MediaType]*Resource{
			enums.MediaTypeVideo:   {Content: []byte("v"), Checksum: "v-sum", Name: "v"},
			enums.MediaTypeTrailer: {Content: []byte("t"), Checksum: "t-sum", Name: "t"},
			enums.MediaTypeBanner:  {Content: []byte("b"), Checksum: "b-sum", Name: "b"},
		},
	})

	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if !strings.Contains(domainErr.Message(), "An error on create video was observed [videoId:") {
		t.Fatalf("message must carry the video id, got %q", domainErr.Message())
	}
	if len(f.media.cleared) != 1 {
		t.Fatalf("expected one clearResources call, got %d", len(f.media.cleared))
	}
	if f.repo.saved != 0 {
		t.Fatal("no row may be persisted after an upload failure")
	}
	// video slot is stored before trailer in the fixed order, banner never is
	if len(f.media.stored) != 1 || f.media.stored[0] != enums.MediaTypeVideo {
		t.Fatalf("unexpected stored slots %v", f.media.stored)
	}
}

func TestCreateVideoSaveFailureAlsoRollsBackBlobs(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	f.repo.saveErr = errors.New("relational store down")

	_, err := f.service.Create(context.Background(), Input{
		Attributes: Attributes{Title: "save fails", Rating: enums.RatingER},
		Resources: map[enums.MediaType]*Resource{
			enums.MediaTypeBanner: {Content: []byte("b"), Checksum: "b-sum", Name: "b"},
		},
	})

	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(f.media.cleared) != 1 {
		t.Fatal("uploaded blobs must be cleared when the commit fails")
	}
}

func TestUpdatePublishFlipBumpsOnlyUpdatedAt(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	attrs := Attributes{
		Title:       "flip publish",
		Description: "unchanged",
		LaunchYear:  2019,
		Duration:    77.7,
		Opened:      true,
		Published:   false,
		Rating:      enums.RatingAge14,
		Categories:  []uuid.UUID{f.filmes},
	}
	created, err := f.service.Create(context.Background(), Input{Attributes: attrs})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := created.UpdatedAt()

	attrs.Published = true
	updated, err := f.service.Update(context.Background(), created.ID(), Input{Attributes: attrs})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if !updated.Published() {
		t.Fatal("published flag not flipped")
	}
	if !updated.UpdatedAt().After(before) {
		t.Fatalf("updatedAt %v not strictly after %v", updated.UpdatedAt(), before)
	}
	if updated.Title() != attrs.Title || updated.Description() != attrs.Description ||
		updated.LaunchYear() != attrs.LaunchYear || updated.Duration() != attrs.Duration ||
		updated.Opened() != attrs.Opened || updated.Rating() != attrs.Rating {
		t.Fatal("fields other than published must be unchanged")
	}
	if !updated.CreatedAt().Equal(created.CreatedAt()) {
		t.Fatal("createdAt must not change on update")
	}
	sameIDSet(t, updated.Categories(), attrs.Categories)
}

func TestUpdateUnknownVideoIsNotFound(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	_, err := f.service.Update(context.Background(), uuid.New(), Input{
		Attributes: Attributes{Title: "nobody", Rating: enums.RatingFree},
	})
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestUpdateUploadFailureSkipsCleanup(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	created, err := f.service.Create(context.Background(), Input{
		Attributes: Attributes{Title: "keep blobs", Rating: enums.RatingAge10},
		Resources: map[enums.MediaType]*Resource{
			enums.MediaTypeVideo: {Content: []byte("v"), Checksum: "v-sum", Name: "v"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	f.media.failOn[enums.MediaTypeBanner] = errors.New("bucket unavailable")

	_, err = f.service.Update(context.Background(), created.ID(), Input{
		Attributes: Attributes{Title: "keep blobs", Rating: enums.RatingAge10},
		Resources: map[enums.MediaType]*Resource{
			enums.MediaTypeBanner: {Content: []byte("b"), Checksum: "b-sum", Name: "b"},
		},
	})

	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(f.media.cleared) != 0 {
		t.Fatal("update failures must not clear the video's prefix")
	}
}

func TestDeleteVideoIsIdempotentAndClearsBlobs(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	created, err := f.service.Create(context.Background(), Input{
		Attributes: Attributes{Title: "to delete", Rating: enums.RatingER},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.service.Delete(context.Background(), created.ID()); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := f.service.Delete(context.Background(), created.ID()); err != nil {
		t.Fatalf("second delete must not fail: %v", err)
	}
	if len(f.media.cleared) != 2 {
		t.Fatalf("expected clearResources on every delete, got %d calls", len(f.media.cleared))
	}
}

func TestGetMediaDelegatesToPipeline(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	_, err := f.service.GetMedia(context.Background(), uuid.New(), enums.MediaTypeThumbnail)
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected not-found from pipeline, got %v", err)
	}
}
