package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/codelabs/catalog-backend/api/responses"
	"github.com/codelabs/catalog-backend/api/validators"
	genresvc "github.com/codelabs/catalog-backend/internal/genre"
	"github.com/codelabs/catalog-backend/pkg/db/models"
	"github.com/codelabs/catalog-backend/pkg/logger"
)

type genreRequest struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Active     bool     `json:"is_active"`
	Categories []string `json:"categories_id" validate:"omitempty,dive,uuid"`
}

type genreResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Active     bool       `json:"is_active"`
	Categories []string   `json:"categories_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

func toGenreResponse(row *models.Genre) genreResponse {
	categories := make([]string, 0, len(row.Categories))
	for _, join := range row.Categories {
		categories = append(categories, join.CategoryID.String())
	}
	return genreResponse{
		ID:         row.ID.String(),
		Name:       row.Name,
		Active:     row.Active,
		Categories: categories,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
		DeletedAt:  row.DeletedAt,
	}
}

func genreInput(payload genreRequest) (genresvc.Input, error) {
	categories, err := validators.ParseUUIDs("categories_id", payload.Categories)
	if err != nil {
		return genresvc.Input{}, err
	}
	return genresvc.Input{
		Name:       payload.Name,
		Active:     payload.Active,
		Categories: categories,
	}, nil
}

func CreateGenre(svc genresvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload genreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := genreInput(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toGenreResponse(row))
	}
}

func UpdateGenre(svc genresvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload genreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := genreInput(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toGenreResponse(row))
	}
}

func GetGenre(svc genresvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toGenreResponse(row))
	}
}

func DeleteGenre(svc genresvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

func ListGenres(svc genresvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("search")), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]genreResponse, 0, len(result.Items))
		for i := range result.Items {
			items = append(items, toGenreResponse(&result.Items[i]))
		}

		responses.WriteSuccess(w, map[string]any{
			"current_page": result.CurrentPage,
			"per_page":     result.PerPage,
			"total":        result.Total,
			"items":        items,
		})
	}
}
