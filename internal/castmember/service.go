package castmember

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/db/models"
	"github.com/codelabs/catalog-backend/pkg/enums"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/logger"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

type castMemberRepository interface {
	Save(ctx context.Context, row *models.CastMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CastMember, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.CastMember], error)
}

// Input carries the mutable cast member fields.
type Input struct {
	Name string
	Type enums.CastMemberType
}

// Service exposes cast member CRUD.
type Service interface {
	Create(ctx context.Context, input Input) (*models.CastMember, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.CastMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.CastMember, error)
	List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.CastMember], error)
}

type service struct {
	repo castMemberRepository
	logg *logger.Logger
}

// NewService builds the cast member service.
func NewService(repo castMemberRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cast member repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.CastMember, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid cast member type %q", input.Type))
	}

	now := time.Now().UTC()
	row := &models.CastMember{
		ID:        uuid.New(),
		Name:      input.Name,
		Type:      input.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "cast_member_id", row.ID.String()), "cast member created")
	return row, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.CastMember, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid cast member type %q", input.Type))
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Name = input.Name
	row.Type = input.Type
	row.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.CastMember, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.CastMember], error) {
	return s.repo.List(ctx, term, page)
}
