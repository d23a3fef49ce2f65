package castmember

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/db/models"
	"github.com/codelabs/catalog-backend/pkg/enums"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/logger"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

type stubRepo struct {
	members map[uuid.UUID]*models.CastMember
}

func newStubRepo() *stubRepo {
	return &stubRepo{members: map[uuid.UUID]*models.CastMember{}}
}

func (r *stubRepo) Save(_ context.Context, row *models.CastMember) error {
	clone := *row
	r.members[row.ID] = &clone
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (*models.CastMember, error) {
	row, ok := r.members[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("CastMember with ID %s was not found", id))
	}
	clone := *row
	return &clone, nil
}

func (r *stubRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(r.members, id)
	return nil
}

func (r *stubRepo) List(_ context.Context, _ string, page pagination.Query) (*pagination.Page[models.CastMember], error) {
	return pagination.NewPage(page.Normalize("name"), 0, []models.CastMember{}), nil
}

func newTestService(t *testing.T) (Service, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "catalog-test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, repo
}

func TestCreateCastMember(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)

	row, err := svc.Create(context.Background(), Input{Name: "Vin Diesel", Type: enums.CastMemberTypeActor})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.Name != "Vin Diesel" || row.Type != enums.CastMemberTypeActor {
		t.Fatalf("unexpected row %+v", row)
	}
	if !row.CreatedAt.Equal(row.UpdatedAt) {
		t.Fatal("createdAt and updatedAt must match on creation")
	}
	if len(repo.members) != 1 {
		t.Fatal("row not persisted")
	}
}

func TestCreateCastMemberRejectsUnknownType(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)

	_, err := svc.Create(context.Background(), Input{Name: "Nobody", Type: "PRODUCER"})

	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.members) != 0 {
		t.Fatal("invalid input must not persist")
	}
}

func TestUpdateCastMemberBumpsUpdatedAt(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), Input{Name: "Rauan", Type: enums.CastMemberTypeActor})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, Input{Name: "Rauan", Type: enums.CastMemberTypeDirector})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Type != enums.CastMemberTypeDirector {
		t.Fatal("type not updated")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("updatedAt must move forward on update")
	}
}

func TestUpdateUnknownCastMemberIsNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), Input{Name: "x", Type: enums.CastMemberTypeActor})
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
