package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/codelabs/catalog-backend/api/responses"
	"github.com/codelabs/catalog-backend/api/validators"
	castmembersvc "github.com/codelabs/catalog-backend/internal/castmember"
	"github.com/codelabs/catalog-backend/pkg/db/models"
	"github.com/codelabs/catalog-backend/pkg/enums"
	"github.com/codelabs/catalog-backend/pkg/logger"
)

type castMemberRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"required,oneof=ACTOR DIRECTOR"`
}

type castMemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCastMemberResponse(row *models.CastMember) castMemberResponse {
	return castMemberResponse{
		ID:        row.ID.String(),
		Name:      row.Name,
		Type:      row.Type.String(),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func CreateCastMember(svc castmembersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload castMemberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Create(r.Context(), castmembersvc.Input{
			Name: payload.Name,
			Type: enums.CastMemberType(payload.Type),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toCastMemberResponse(row))
	}
}

func UpdateCastMember(svc castmembersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload castMemberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Update(r.Context(), id, castmembersvc.Input{
			Name: payload.Name,
			Type: enums.CastMemberType(payload.Type),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCastMemberResponse(row))
	}
}

func GetCastMember(svc castmembersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, toCastMemberResponse(row))
	}
}

func DeleteCastMember(svc castmembersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

func ListCastMembers(svc castmembersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		items := make([]castMemberResponse, 0, len(result.Items))
		for i := range result.Items {
			items = append(items, toCastMemberResponse(&result.Items[i]))
		}

		responses.WriteSuccess(w, map[string]any{
			"current_page": result.CurrentPage,
			"per_page":     result.PerPage,
			"total":        result.Total,
			"items":        items,
		})
	}
}
