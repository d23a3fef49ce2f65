package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParsePagination reads page, perPage, sort and dir from the query string.
func ParsePagination(r *http.Request) (pagination.Query, error) {
	page, err := ParseQueryInt(r, "page", 0, 0, 1_000_000)
	if err != nil {
		return pagination.Query{}, err
	}
	perPage, err := ParseQueryInt(r, "perPage", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return pagination.Query{}, err
	}
	return pagination.Query{
		Page:      page,
		PerPage:   perPage,
		Sort:      strings.TrimSpace(r.URL.Query().Get("sort")),
		Direction: strings.TrimSpace(r.URL.Query().Get("dir")),
	}, nil
}

// ParseUUIDList reads a comma-separated list of uuids from one query key.
func ParseUUIDList(r *http.Request, key string) ([]uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a list of uuids").
				WithDetails(map[string]any{"field": key, "value": part})
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseUUIDs converts id strings from a request body, keeping input order so
// reference-validation errors list missing ids deterministically.
func ParseUUIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "field must contain valid uuids").
				WithDetails(map[string]any{"field": field, "value": value})
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// PathUUID parses a path parameter as uuid.
func PathUUID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a valid uuid").
			WithDetails(map[string]any{"value": value})
	}
	return id, nil
}
