package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/api/responses"
	"github.com/codelabs/catalog-backend/api/validators"
	videosvc "github.com/codelabs/catalog-backend/internal/video"
	"github.com/codelabs/catalog-backend/pkg/checksum"
	"github.com/codelabs/catalog-backend/pkg/enums"
	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
	"github.com/codelabs/catalog-backend/pkg/logger"
)

const maxVideoUploadBytes = 256 << 20

// filePartsBySlot maps the multipart file field names to media slots.
var filePartsBySlot = map[enums.MediaType]string{
	enums.MediaTypeVideo:         "video_file",
	enums.MediaTypeTrailer:       "trailer_file",
	enums.MediaTypeBanner:        "banner_file",
	enums.MediaTypeThumbnail:     "thumb_file",
	enums.MediaTypeThumbnailHalf: "thumb_half_file",
}

type videoRequest struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Description  string   `json:"description" validate:"max=4000"`
	YearLaunched int      `json:"year_launched" validate:"required"`
	Duration     float64  `json:"duration"`
	Opened       bool     `json:"opened"`
	Published    bool     `json:"published"`
	Rating       string   `json:"rating" validate:"required"`
	Categories   []string `json:"categories_id" validate:"omitempty,dive,uuid"`
	Genres       []string `json:"genres_id" validate:"omitempty,dive,uuid"`
	CastMembers  []string `json:"cast_members_id" validate:"omitempty,dive,uuid"`
}

func (req videoRequest) toInput() (videosvc.Input, error) {
	rating, err := enums.ParseRating(req.Rating)
	if err != nil {
		return videosvc.Input{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid rating %q", req.Rating))
	}

	categories, err := validators.ParseUUIDs("categories_id", req.Categories)
	if err != nil {
		return videosvc.Input{}, err
	}
	genres, err := validators.ParseUUIDs("genres_id", req.Genres)
	if err != nil {
		return videosvc.Input{}, err
	}
	castMembers, err := validators.ParseUUIDs("cast_members_id", req.CastMembers)
	if err != nil {
		return videosvc.Input{}, err
	}

	return videosvc.Input{
		Attributes: videosvc.Attributes{
			Title:       req.Title,
			Description: req.Description,
			LaunchYear:  req.YearLaunched,
			Duration:    req.Duration,
			Opened:      req.Opened,
			Published:   req.Published,
			Rating:      rating,
			Categories:  categories,
			Genres:      genres,
			CastMembers: castMembers,
		},
		Resources: map[enums.MediaType]*videosvc.Resource{},
	}, nil
}

type audioVideoMediaResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Checksum        string `json:"checksum"`
	RawLocation     string `json:"raw_location"`
	EncodedLocation string `json:"encoded_location,omitempty"`
	Status          string `json:"status"`
}

type imageMediaResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Checksum string `json:"checksum"`
	Location string `json:"location"`
}

type videoResponse struct {
	ID            string                   `json:"id"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	YearLaunched  int                      `json:"year_launched"`
	Duration      float64                  `json:"duration"`
	Opened        bool                     `json:"opened"`
	Published     bool                     `json:"published"`
	Rating        string                   `json:"rating"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	Categories    []string                 `json:"categories_id"`
	Genres        []string                 `json:"genres_id"`
	CastMembers   []string                 `json:"cast_members_id"`
	Video         *audioVideoMediaResponse `json:"video,omitempty"`
	Trailer       *audioVideoMediaResponse `json:"trailer,omitempty"`
	Banner        *imageMediaResponse      `json:"banner,omitempty"`
	Thumbnail     *imageMediaResponse      `json:"thumbnail,omitempty"`
	ThumbnailHalf *imageMediaResponse      `json:"thumbnail_half,omitempty"`
}

func toVideoResponse(v *videosvc.Video) videoResponse {
	resp := videoResponse{
		ID:           v.ID().String(),
		Title:        v.Title(),
		Description:  v.Description(),
		YearLaunched: v.LaunchYear(),
		Duration:     v.Duration(),
		Opened:       v.Opened(),
		Published:    v.Published(),
		Rating:       v.Rating().String(),
		CreatedAt:    v.CreatedAt(),
		UpdatedAt:    v.UpdatedAt(),
		Categories:   idStrings(v.Categories()),
		Genres:       idStrings(v.Genres()),
		CastMembers:  idStrings(v.CastMembers()),
	}
	if m := v.Video(); m != nil {
		resp.Video = toAudioVideoResponse(m)
	}
	if m := v.Trailer(); m != nil {
		resp.Trailer = toAudioVideoResponse(m)
	}
	if m := v.Banner(); m != nil {
		resp.Banner = toImageResponse(m)
	}
	if m := v.Thumbnail(); m != nil {
		resp.Thumbnail = toImageResponse(m)
	}
	if m := v.ThumbnailHalf(); m != nil {
		resp.ThumbnailHalf = toImageResponse(m)
	}
	return resp
}

func toAudioVideoResponse(m *videosvc.AudioVideoMedia) *audioVideoMediaResponse {
	return &audioVideoMediaResponse{
		ID:              m.ID.String(),
		Name:            m.Name,
		Checksum:        m.Checksum,
		RawLocation:     m.RawLocation,
		EncodedLocation: m.EncodedLocation,
		Status:          m.Status.String(),
	}
}

func toImageResponse(m *videosvc.ImageMedia) *imageMediaResponse {
	return &imageMediaResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		Checksum: m.Checksum,
		Location: m.Location,
	}
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// CreateVideo accepts either a JSON body (metadata only) or a multipart form
// carrying metadata fields plus up to five file parts, one per media slot.
func CreateVideo(svc videosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "video service unavailable"))
			return
		}

		var input videosvc.Input
		var err error

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			input, err = decodeMultipartVideo(r)
		} else {
			var payload videoRequest
			if err = validators.DecodeJSONBody(r, &payload); err == nil {
				input, err = payload.toInput()
			}
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		v, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toVideoResponse(v))
	}
}

// UpdateVideo replaces the mutable fields wholesale from a JSON body.
func UpdateVideo(svc videosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload videoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		v, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toVideoResponse(v))
	}
}

func GetVideo(svc videosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		v, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toVideoResponse(v))
	}
}

func DeleteVideo(svc videosvc.Service, logg *logger.Logger) http.HandlerFunc {
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

func ListVideos(svc videosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categories, err := validators.ParseUUIDList(r, "categories_ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		genres, err := validators.ParseUUIDList(r, "genres_ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		castMembers, err := validators.ParseUUIDList(r, "cast_members_ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), videosvc.SearchQuery{
			Term:        strings.TrimSpace(r.URL.Query().Get("search")),
			Categories:  categories,
			Genres:      genres,
			CastMembers: castMembers,
			Page:        page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetVideoMedia streams the raw blob for one media slot.
func GetVideoMedia(svc videosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mediaType, err := enums.ParseMediaType(chi.URLParam(r, "type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid media type %q", chi.URLParam(r, "type"))))
			return
		}

		res, err := svc.GetMedia(r.Context(), id, mediaType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contentType := res.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(res.Content)))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", res.Name))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(res.Content); err != nil {
			logg.Error(r.Context(), "writing media payload", err)
		}
	}
}

func decodeMultipartVideo(r *http.Request) (videosvc.Input, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxVideoUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return videosvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	form := r.MultipartForm
	yearLaunched, _ := strconv.Atoi(formValue(form, "year_launched"))
	duration, _ := strconv.ParseFloat(formValue(form, "duration"), 64)

	payload := videoRequest{
		Title:        formValue(form, "title"),
		Description:  formValue(form, "description"),
		YearLaunched: yearLaunched,
		Duration:     duration,
		Opened:       formValue(form, "opened") == "true",
		Published:    formValue(form, "published") == "true",
		Rating:       formValue(form, "rating"),
		Categories:   form.Value["categories_id"],
		Genres:       form.Value["genres_id"],
		CastMembers:  form.Value["cast_members_id"],
	}
	if err := validators.ValidateStruct(payload); err != nil {
		return videosvc.Input{}, err
	}

	input, err := payload.toInput()
	if err != nil {
		return videosvc.Input{}, err
	}

	for _, mediaType := range enums.MediaTypes {
		headers := form.File[filePartsBySlot[mediaType]]
		if len(headers) == 0 {
			continue
		}
		res, err := resourceFromPart(headers[0])
		if err != nil {
			return videosvc.Input{}, err
		}
		input.Resources[mediaType] = res
	}
	return input, nil
}

func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func resourceFromPart(header *multipart.FileHeader) (*videosvc.Resource, error) {
	file, err := header.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "opening uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded file")
	}

	return &videosvc.Resource{
		Content:     content,
		Checksum:    checksum.CRC32C(content),
		ContentType: header.Header.Get("Content-Type"),
		Name:        header.Filename,
	}, nil
}
