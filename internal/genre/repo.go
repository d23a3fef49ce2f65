// Package genre implements genre CRUD. Genres reference categories, so
// writes run the same reference validation the video aggregate uses.
package genre

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

var genreSortColumns = map[string]string{
	"name":       "genres.name",
	"created_at": "genres.created_at",
	"updated_at": "genres.updated_at",
}

// Repository persists genres and their category join rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save upserts the genre row and replaces its category joins in one
// transaction.
func (r *Repository) Save(ctx context.Context, row *models.Genre, categoryIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		joins := row.Categories
		row.Categories = nil
		defer func() { row.Categories = joins }()

		if err := tx.Save(row).Error; err != nil {
			return fmt.Errorf("saving genre %s: %w", row.ID, err)
		}

		if err := tx.Where("genre_id = ?", row.ID).Delete(&models.GenreCategory{}).Error; err != nil {
			return fmt.Errorf("clearing category joins for genre %s: %w", row.ID, err)
		}
		if len(categoryIDs) == 0 {
			return nil
		}

		rows := make([]models.GenreCategory, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			rows = append(rows, models.GenreCategory{GenreID: row.ID, CategoryID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("saving category joins for genre %s: %w", row.ID, err)
		}
		return nil
	})
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	var row models.Genre
	err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("Genre with ID %s was not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("loading genre %s: %w", id, err)
	}
	return &row, nil
}

// DeleteByID removes the genre and its joins; deleting a missing id is a
// no-op.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id).Delete(&models.GenreCategory{}).Error; err != nil {
			return fmt.Errorf("clearing category joins for genre %s: %w", id, err)
		}
		if err := tx.Delete(&models.Genre{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting genre %s: %w", id, err)
		}
		return nil
	})
}

// List filters by a case-insensitive term on name.
func (r *Repository) List(ctx context.Context, term string, page pagination.Query) (*pagination.Page[models.Genre], error) {
	page = page.Normalize("name")

	sortColumn, ok := genreSortColumns[page.Sort]
	if !ok {
		sortColumn = genreSortColumns["name"]
	}

	query := r.db.WithContext(ctx).Model(&models.Genre{})
	if term = strings.TrimSpace(term); term != "" {
		query = query.Where("UPPER(genres.name) LIKE ?", "%"+strings.ToUpper(term)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting genres: %w", err)
	}

	var rows []models.Genre
	err := query.
		Preload("Categories").
		Order(sortColumn + " " + page.Direction).
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing genres: %w", err)
	}

	return pagination.NewPage(page, total, rows), nil
}

// Aggregate names this domain in reference-validation errors.
func (r *Repository) Aggregate() string {
	return "genres"
}

// ExistsByIDs returns the subset of ids present in the table.
func (r *Repository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Genre{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("checking genre ids: %w", err)
	}
	return found, nil
}
