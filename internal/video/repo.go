package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codelabs/catalog-backend/pkg/db/models"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/pagination"
)

// sortColumnsByField whitelists the sortable projection fields. Anything
// else falls back to title.
var sortColumnsByField = map[string]string{
	"title":      "videos.title",
	"created_at": "videos.created_at",
	"updated_at": "videos.updated_at",
}

// Repository persists the video aggregate graph with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save upserts the scalar row, the media sub-rows and all three join-row
// sets in one relational transaction. Atomicity covers the relational store
// only; blobs are the media pipeline's problem.
func (r *Repository) Save(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		priorMediaIDs, err := collectPriorMediaIDs(tx, v.ID())
		if err != nil {
			return err
		}

		row := models.Video{
			ID:           v.ID(),
			Title:        v.Title(),
			Description:  v.Description(),
			YearLaunched: v.LaunchYear(),
			Opened:       v.Opened(),
			Published:    v.Published(),
			Rating:       v.Rating(),
			Duration:     v.Duration(),
			CreatedAt:    v.CreatedAt(),
			UpdatedAt:    v.UpdatedAt(),
		}

		currentMediaIDs := make(map[uuid.UUID]struct{}, 5)

		for _, m := range []*AudioVideoMedia{v.Video(), v.Trailer()} {
			if m == nil {
				continue
			}
			sub := models.AudioVideoMedia{
				ID:              m.ID,
				Name:            m.Name,
				Checksum:        m.Checksum,
				RawLocation:     m.RawLocation,
				EncodedLocation: m.EncodedLocation,
				Status:          m.Status,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sub).Error; err != nil {
				return fmt.Errorf("saving audio video media %s: %w", m.ID, err)
			}
			currentMediaIDs[m.ID] = struct{}{}
		}
		for _, m := range []*ImageMedia{v.Banner(), v.Thumbnail(), v.ThumbnailHalf()} {
			if m == nil {
				continue
			}
			sub := models.ImageMedia{
				ID:       m.ID,
				Name:     m.Name,
				Checksum: m.Checksum,
				Location: m.Location,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sub).Error; err != nil {
				return fmt.Errorf("saving image media %s: %w", m.ID, err)
			}
			currentMediaIDs[m.ID] = struct{}{}
		}

		if m := v.Video(); m != nil {
			row.VideoMediaID = &m.ID
		}
		if m := v.Trailer(); m != nil {
			row.TrailerID = &m.ID
		}
		if m := v.Banner(); m != nil {
			row.BannerID = &m.ID
		}
		if m := v.Thumbnail(); m != nil {
			row.ThumbnailID = &m.ID
		}
		if m := v.ThumbnailHalf(); m != nil {
			row.ThumbnailHalfID = &m.ID
		}

		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&row).Error; err != nil {
			return fmt.Errorf("saving video %s: %w", v.ID(), err)
		}

		if err := replaceJoinRows(tx, v); err != nil {
			return err
		}

		// Sub-rows replaced by this save are no longer referenced; drop them.
		for _, ref := range priorMediaIDs {
			if _, kept := currentMediaIDs[ref.mediaID]; kept {
				continue
			}
			if err := tx.Delete(ref.model, "id = ?", ref.mediaID).Error; err != nil {
				return fmt.Errorf("deleting orphaned media %s: %w", ref.mediaID, err)
			}
		}
		return nil
	})
}

type priorMediaRef struct {
	mediaID uuid.UUID
	model   any
}

func collectPriorMediaIDs(tx *gorm.DB, videoID uuid.UUID) ([]priorMediaRef, error) {
	var prior models.Video
	err := tx.Select("video_media_id", "trailer_id", "banner_id", "thumbnail_id", "thumbnail_half_id").
		First(&prior, "id = ?", videoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading prior media refs for %s: %w", videoID, err)
	}

	var refs []priorMediaRef
	for _, id := range []*uuid.UUID{prior.VideoMediaID, prior.TrailerID} {
		if id != nil {
			refs = append(refs, priorMediaRef{mediaID: *id, model: &models.AudioVideoMedia{}})
		}
	}
	for _, id := range []*uuid.UUID{prior.BannerID, prior.ThumbnailID, prior.ThumbnailHalfID} {
		if id != nil {
			refs = append(refs, priorMediaRef{mediaID: *id, model: &models.ImageMedia{}})
		}
	}
	return refs, nil
}

func replaceJoinRows(tx *gorm.DB, v *Video) error {
	videoID := v.ID()

	if err := tx.Where("video_id = ?", videoID).Delete(&models.VideoCategory{}).Error; err != nil {
		return fmt.Errorf("clearing category joins for %s: %w", videoID, err)
	}
	if cats := v.Categories(); len(cats) > 0 {
		rows := make([]models.VideoCategory, 0, len(cats))
		for _, id := range cats {
			rows = append(rows, models.VideoCategory{VideoID: videoID, CategoryID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("saving category joins for %s: %w", videoID, err)
		}
	}

	if err := tx.Where("video_id = ?", videoID).Delete(&models.VideoGenre{}).Error; err != nil {
		return fmt.Errorf("clearing genre joins for %s: %w", videoID, err)
	}
	if genres := v.Genres(); len(genres) > 0 {
		rows := make([]models.VideoGenre, 0, len(genres))
		for _, id := range genres {
			rows = append(rows, models.VideoGenre{VideoID: videoID, GenreID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("saving genre joins for %s: %w", videoID, err)
		}
	}

	if err := tx.Where("video_id = ?", videoID).Delete(&models.VideoCastMember{}).Error; err != nil {
		return fmt.Errorf("clearing cast member joins for %s: %w", videoID, err)
	}
	if members := v.CastMembers(); len(members) > 0 {
		rows := make([]models.VideoCastMember, 0, len(members))
		for _, id := range members {
			rows = append(rows, models.VideoCastMember{VideoID: videoID, CastMemberID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("saving cast member joins for %s: %w", videoID, err)
		}
	}
	return nil
}

// GetByID loads the full aggregate graph.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Video, error) {
	var row models.Video
	err := r.db.WithContext(ctx).
		Preload("VideoMedia").
		Preload("Trailer").
		Preload("Banner").
		Preload("Thumbnail").
		Preload("ThumbnailHalf").
		Preload("Categories").
		Preload("Genres").
		Preload("CastMembers").
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("Video with ID %s was not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("loading video %s: %w", id, err)
	}
	return restoreFromRow(&row), nil
}

func restoreFromRow(row *models.Video) *Video {
	state := State{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		LaunchYear:  row.YearLaunched,
		Duration:    row.Duration,
		Opened:      row.Opened,
		Published:   row.Published,
		Rating:      row.Rating,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if m := row.VideoMedia; m != nil {
		state.Video = audioVideoFromModel(m)
	}
	if m := row.Trailer; m != nil {
		state.Trailer = audioVideoFromModel(m)
	}
	if m := row.Banner; m != nil {
		state.Banner = imageFromModel(m)
	}
	if m := row.Thumbnail; m != nil {
		state.Thumbnail = imageFromModel(m)
	}
	if m := row.ThumbnailHalf; m != nil {
		state.ThumbnailHalf = imageFromModel(m)
	}

	for _, join := range row.Categories {
		state.Categories = append(state.Categories, join.CategoryID)
	}
	for _, join := range row.Genres {
		state.Genres = append(state.Genres, join.GenreID)
	}
	for _, join := range row.CastMembers {
		state.CastMembers = append(state.CastMembers, join.CastMemberID)
	}

	return Restore(state)
}

func audioVideoFromModel(m *models.AudioVideoMedia) *AudioVideoMedia {
	return &AudioVideoMedia{
		ID:              m.ID,
		Name:            m.Name,
		Checksum:        m.Checksum,
		RawLocation:     m.RawLocation,
		EncodedLocation: m.EncodedLocation,
		Status:          m.Status,
	}
}

func imageFromModel(m *models.ImageMedia) *ImageMedia {
	return &ImageMedia{
		ID:       m.ID,
		Name:     m.Name,
		Checksum: m.Checksum,
		Location: m.Location,
	}
}

// DeleteByID removes the aggregate's rows. Deleting a missing id is a no-op.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		priorMediaIDs, err := collectPriorMediaIDs(tx, id)
		if err != nil {
			return err
		}

		for _, model := range []any{
			&models.VideoCategory{},
			&models.VideoGenre{},
			&models.VideoCastMember{},
		} {
			if err := tx.Where("video_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("clearing joins for %s: %w", id, err)
			}
		}

		if err := tx.Delete(&models.Video{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting video %s: %w", id, err)
		}

		for _, ref := range priorMediaIDs {
			if err := tx.Delete(ref.model, "id = ?", ref.mediaID).Error; err != nil {
				return fmt.Errorf("deleting media %s: %w", ref.mediaID, err)
			}
		}
		return nil
	})
}

// ListVideos answers the browse query with the preview projection. Join
// fan-out duplicates are collapsed by DISTINCT before counting and paging.
func (r *Repository) ListVideos(ctx context.Context, q SearchQuery) (*pagination.Page[VideoPreview], error) {
	page := q.Page.Normalize("title")

	sortColumn, ok := sortColumnsByField[page.Sort]
	if !ok {
		sortColumn = sortColumnsByField["title"]
	}

	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Video{})
		if term := strings.TrimSpace(q.Term); term != "" {
			query = query.Where("UPPER(videos.title) LIKE ?", "%"+strings.ToUpper(term)+"%")
		}
		if len(q.Categories) > 0 {
			query = query.
				Joins("JOIN video_categories vc ON vc.video_id = videos.id").
				Where("vc.category_id IN ?", q.Categories)
		}
		if len(q.Genres) > 0 {
			query = query.
				Joins("JOIN video_genres vg ON vg.video_id = videos.id").
				Where("vg.genre_id IN ?", q.Genres)
		}
		if len(q.CastMembers) > 0 {
			query = query.
				Joins("JOIN video_cast_members vcm ON vcm.video_id = videos.id").
				Where("vcm.cast_member_id IN ?", q.CastMembers)
		}
		return query
	}

	var total int64
	if err := filtered().Distinct("videos.id").Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting videos: %w", err)
	}

	var rows []models.Video
	err := filtered().
		Distinct("videos.id", "videos.title", "videos.description", "videos.created_at", "videos.updated_at").
		Order(sortColumn + " " + page.Direction).
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}

	previews := make([]VideoPreview, 0, len(rows))
	for _, row := range rows {
		previews = append(previews, VideoPreview{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}

	return pagination.NewPage(page, total, previews), nil
}
