package video

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/codelabs/catalog-backend/internal/refs"
	"github.com/codelabs/catalog-backend/pkg/enums"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/logger"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

type videoRepository interface {
	Save(ctx context.Context, v *Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*Video, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ListVideos(ctx context.Context, q SearchQuery) (*pagination.Page[VideoPreview], error)
}

type mediaResources interface {
	StoreAudioVideo(ctx context.Context, videoID uuid.UUID, mediaType enums.MediaType, res Resource) (*AudioVideoMedia, error)
	StoreImage(ctx context.Context, videoID uuid.UUID, mediaType enums.MediaType, res Resource) (*ImageMedia, error)
	GetResource(ctx context.Context, videoID uuid.UUID, mediaType enums.MediaType) (*Resource, error)
	ClearResources(ctx context.Context, videoID uuid.UUID) error
}

// Input models the create/update command. Resources maps slots to uploads;
// absent slots are simply skipped.
type Input struct {
	Attributes
	Resources map[enums.MediaType]*Resource
}

// Service exposes the video lifecycle.
type Service interface {
	Create(ctx context.Context, input Input) (*Video, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*Video, error)
	List(ctx context.Context, q SearchQuery) (*pagination.Page[VideoPreview], error)
	GetMedia(ctx context.Context, id uuid.UUID, mediaType enums.MediaType) (*Resource, error)
}

type service struct {
	repo        videoRepository
	media       mediaResources
	categories  refs.Checker
	genres      refs.Checker
	castMembers refs.Checker
	logg        *logger.Logger
}

// NewService wires the repository, the media pipeline and the three
// reference checkers into the lifecycle orchestrator.
func NewService(repo videoRepository, media mediaResources, categories, genres, castMembers refs.Checker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("video repository required")
	}
	if media == nil {
		return nil, fmt.Errorf("media resources required")
	}
	if categories == nil || genres == nil || castMembers == nil {
		return nil, fmt.Errorf("reference checkers required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		media:       media,
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
		logg:        logg,
	}, nil
}

// Create validates all three reference domains, builds the aggregate, stores
// the supplied resources slot by slot and commits the row. Any failure after
// the first upload rolls the blobs back before the error surfaces.
func (s *service) Create(ctx context.Context, input Input) (*Video, error) {
	if err := s.validateReferences(ctx, input.Attributes); err != nil {
		return nil, err
	}

	v := NewVideo(input.Attributes)
	ctx = s.logg.WithVideoID(ctx, v.ID().String())

	err := s.storeAndSave(ctx, v, input.Resources)
	if err != nil {
		if cleanupErr := s.media.ClearResources(ctx, v.ID()); cleanupErr != nil {
			s.logg.Error(ctx, "rollback of partial uploads failed", cleanupErr)
			err = multierr.Append(err, cleanupErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err,
			fmt.Sprintf("An error on create video was observed [videoId:%s]", v.ID()))
	}

	s.logg.Info(ctx, "video created")
	return v, nil
}

// Update replaces the mutable fields wholesale and stores any newly supplied
// resources. Upload failures here propagate without blob cleanup: the prefix
// may still hold media referenced by the persisted row, so clearing it would
// destroy good data.
func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, input.Attributes); err != nil {
		return nil, err
	}

	ctx = s.logg.WithVideoID(ctx, id.String())
	v.Update(input.Attributes)

	if err := s.storeAndSave(ctx, v, input.Resources); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err,
			fmt.Sprintf("An error on update video was observed [videoId:%s]", id))
	}

	s.logg.Info(ctx, "video updated")
	return v, nil
}

// Delete removes the row first (idempotent), then clears the blob prefix.
// The two deletions are not atomic with each other.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx = s.logg.WithVideoID(ctx, id.String())

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	if err := s.media.ClearResources(ctx, id); err != nil {
		return err
	}

	s.logg.Info(ctx, "video deleted")
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Video, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, q SearchQuery) (*pagination.Page[VideoPreview], error) {
	return s.repo.ListVideos(ctx, q)
}

func (s *service) GetMedia(ctx context.Context, id uuid.UUID, mediaType enums.MediaType) (*Resource, error) {
	return s.media.GetResource(ctx, id, mediaType)
}

// validateReferences checks categories, then genres, then cast members. The
// first missing id aborts before any upload or write happens.
func (s *service) validateReferences(ctx context.Context, attrs Attributes) error {
	if err := refs.Validate(ctx, s.categories, attrs.Categories); err != nil {
		return err
	}
	if err := refs.Validate(ctx, s.genres, attrs.Genres); err != nil {
		return err
	}
	return refs.Validate(ctx, s.castMembers, attrs.CastMembers)
}

// storeAndSave uploads present slots in fixed order, attaches the returned
// descriptors and commits the aggregate.
func (s *service) storeAndSave(ctx context.Context, v *Video, resources map[enums.MediaType]*Resource) error {
	for _, mediaType := range enums.MediaTypes {
		res, ok := resources[mediaType]
		if !ok || res == nil {
			continue
		}

		switch mediaType {
		case enums.MediaTypeVideo, enums.MediaTypeTrailer:
			m, err := s.media.StoreAudioVideo(ctx, v.ID(), mediaType, *res)
			if err != nil {
				return fmt.Errorf("storing %s resource: %w", mediaType, err)
			}
			v.SetMedia(mediaType, m, nil)

		default:
			m, err := s.media.StoreImage(ctx, v.ID(), mediaType, *res)
			if err != nil {
				return fmt.Errorf("storing %s resource: %w", mediaType, err)
			}
			v.SetMedia(mediaType, nil, m)
		}
	}

	return s.repo.Save(ctx, v)
}
