package video

import (
	"time"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/pagination"
)

// SearchQuery describes the browse endpoint's filter knobs. Terms combine
// with AND across dimensions; inside one dimension a video matches when its
// association set intersects the requested ids.
type SearchQuery struct {
	Term        string
	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
	Page        pagination.Query
}

// VideoPreview is the listing projection. It deliberately skips media and
// association data so browsing never loads the full aggregate graph.
type VideoPreview struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
