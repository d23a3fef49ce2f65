// Package category implements category CRUD and the existence checks other
// aggregates run against the category domain.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codelabs/catalog-backend/pkg/db/models"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

var categorySortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// Repository persists categories with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, row *models.Category) error {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("saving category %s: %w", row.ID, err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var row models.Category
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("Category with ID %s was not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("loading category %s: %w", id, err)
	}
	return &row, nil
}

// DeleteByID removes the row; deleting a missing id is a no-op.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	return nil
}

// List filters by a case-insensitive term over name and description.
func (r *Repository) List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.Category], error) {
	page = page.Normalize("name")

	sortColumn, ok := categorySortColumns[page.Sort]
	if !ok {
		sortColumn = "name"
	}

	query := r.db.WithContext(ctx).Model(&models.Category{})
	if term = strings.TrimSpace(term); term != "" {
		pattern := "%" + strings.ToUpper(term) + "%"
		query = query.Where("UPPER(name) LIKE ? OR UPPER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}

	var rows []models.Category
	err := query.
		Order(sortColumn + " " + page.Direction).
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return pagination.NewPage(page, total, rows), nil
}

// Aggregate names this domain in reference-validation errors.
func (r *Repository) Aggregate() string {
	return "categories"
}

// ExistsByIDs returns the subset of ids present in the table.
func (r *Repository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("checking category ids: %w", err)
	}
	return found, nil
}
