package genre

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/internal/refs"
	"github.com/codelabs/catalog-backend/pkg/db/models"
	"github.com/codelabs/catalog-backend/pkg/logger"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

type genreRepository interface {
	Save(ctx context.Context, row *models.Genre, categoryIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Genre, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.Genre], error)
}

// Input carries the mutable genre fields.
type Input struct {
	Name       string
	Active     bool
	Categories []uuid.UUID
}

// Service exposes genre CRUD.
type Service interface {
	Create(ctx context.Context, input Input) (*models.Genre, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Genre, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Genre, error)
	List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.Genre], error)
}

type service struct {
	repo       genreRepository
	categories refs.Checker
	logg       *logger.Logger
}

// NewService builds the genre service. Category references are validated
// through the same checker the video service uses.
func NewService(repo genreRepository, categories refs.Checker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("genre repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category checker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, categories: categories, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Genre, error) {
	if err := refs.Validate(ctx, s.categories, input.Categories); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &models.Genre{
		ID:        uuid.New(),
		Name:      input.Name,
		Active:    input.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !input.Active {
		row.DeletedAt = &now
	}

	if err := s.repo.Save(ctx, row, input.Categories); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "genre_id", row.ID.String()), "genre created")
	return s.repo.GetByID(ctx, row.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Genre, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := refs.Validate(ctx, s.categories, input.Categories); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row.Name = input.Name
	row.UpdatedAt = now

	switch {
	case input.Active && !row.Active:
		row.Active = true
		row.DeletedAt = nil
	case !input.Active && row.Active:
		row.Active = false
		row.DeletedAt = &now
	}

	if err := s.repo.Save(ctx, row, input.Categories); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.Genre], error) {
	return s.repo.List(ctx, term, page)
}
