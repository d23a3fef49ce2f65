package pagination

import "strings"

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 25
	// MaxPerPage caps how many rows any listing query can request.
	MaxPerPage = 100
)

// Query holds offset pagination and sorting inputs from controllers or services.
type Query struct {
	Page      int
	PerPage   int
	Sort      string
	Direction string
}

// Page is one page of results together with the total match count.
type Page[T any] struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	Items       []T   `json:"items"`
}

// NewPage builds a page envelope from a normalized query and its results.
func NewPage[T any](q Query, total int64, items []T) *Page[T] {
	return &Page[T]{
		CurrentPage: q.Page,
		PerPage:     q.PerPage,
		Total:       total,
		Items:       items,
	}
}

// Normalize clamps the page inputs and falls back to the provided sort field.
func (q Query) Normalize(defaultSort string) Query {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if strings.TrimSpace(q.Sort) == "" {
		q.Sort = defaultSort
	}
	if !strings.EqualFold(q.Direction, "desc") {
		q.Direction = "asc"
	} else {
		q.Direction = "desc"
	}
	return q
}

// Offset returns the row offset for the normalized query.
func (q Query) Offset() int {
	return q.Page * q.PerPage
}
