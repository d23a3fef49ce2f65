package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/db/models"
	"github.com/codelabs/catalog-backend/pkg/logger"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

type categoryRepository interface {
	Save(ctx context.Context, row *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.Category], error)
}

// Input carries the mutable category fields.
type Input struct {
	Name        string
	Description string
	Active      bool
}

// Service exposes category CRUD.
type Service interface {
	Create(ctx context.Context, input Input) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.Category], error)
}

type service struct {
	repo categoryRepository
	logg *logger.Logger
}

// NewService builds the category service.
func NewService(repo categoryRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Category, error) {
	now := time.Now().UTC()
	row := &models.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Active:      input.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !input.Active {
		row.DeletedAt = &now
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "category_id", row.ID.String()), "category created")
	return row, nil
}

// Update replaces the mutable fields wholesale. Deactivating stamps
// deletedAt; reactivating clears it.
func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Category, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row.Name = input.Name
	row.Description = input.Description
	row.UpdatedAt = now

	switch {
	case input.Active && !row.Active:
		row.Active = true
		row.DeletedAt = nil
	case !input.Active && row.Active:
		row.Active = false
		row.DeletedAt = &now
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.Category], error) {
	return s.repo.List(ctx, term, page)
}
