package category

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/codelabs/catalog-backend/pkg/db/models"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Category{}))
	return db
}

func seedCategory(t *testing.T, repo *Repository, name string) *models.Category {
	t.Helper()
	now := time.Now().UTC()
	row := &models.Category{
		ID:        uuid.New(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Save(context.Background(), row))
	return row
}

func TestSaveAndGetByID(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newTestDB(t))
	row := seedCategory(t, repo, "Filmes")

	got, err := repo.GetByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, "Filmes", got.Name)
	assert.True(t, got.Active)
}

func TestGetByIDUnknownIsNotFound(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDeleteByIDIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newTestDB(t))
	row := seedCategory(t, repo, "Series")
	ctx := context.Background()

	require.NoError(t, repo.DeleteByID(ctx, row.ID))
	require.NoError(t, repo.DeleteByID(ctx, row.ID))

	_, err := repo.GetByID(ctx, row.ID)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestListFiltersAndPaginates(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	seedCategory(t, repo, "Filmes")
	seedCategory(t, repo, "Documentários")
	seedCategory(t, repo, "Series")

	page, err := repo.List(ctx, "film", pagination.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Filmes", page.Items[0].Name)

	all, err := repo.List(ctx, "", pagination.Query{PerPage: 2, Sort: "name"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	assert.Len(t, all.Items, 2)
}

func TestExistsByIDsReturnsOnlyKnown(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newTestDB(t))
	row := seedCategory(t, repo, "Filmes")
	unknown := uuid.New()

	found, err := repo.ExistsByIDs(context.Background(), []uuid.UUID{row.ID, unknown})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{row.ID}, found)
	assert.Equal(t, "categories", repo.Aggregate())
}
