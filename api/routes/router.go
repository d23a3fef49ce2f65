package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codelabs/catalog-backend/api/controllers"
	"github.com/codelabs/catalog-backend/api/middleware"
	castmembersvc "github.com/codelabs/catalog-backend/internal/castmember"
	categorysvc "github.com/codelabs/catalog-backend/internal/category"
	genresvc "github.com/codelabs/catalog-backend/internal/genre"
	videosvc "github.com/codelabs/catalog-backend/internal/video"
	"github.com/codelabs/catalog-backend/pkg/config"
	"github.com/codelabs/catalog-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	blobP controllers.Pinger,
	videoService videosvc.Service,
	categoryService categorysvc.Service,
	genreService genresvc.Service,
	castMemberService castmembersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, blobP))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/videos", func(r chi.Router) {
			r.Post("/", controllers.CreateVideo(videoService, logg))
			r.Get("/", controllers.ListVideos(videoService, logg))
			r.Get("/{id}", controllers.GetVideo(videoService, logg))
			r.Put("/{id}", controllers.UpdateVideo(videoService, logg))
			r.Delete("/{id}", controllers.DeleteVideo(videoService, logg))
			r.Get("/{id}/medias/{type}", controllers.GetVideoMedia(videoService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(categoryService, logg))
			r.Get("/", controllers.ListCategories(categoryService, logg))
			r.Get("/{id}", controllers.GetCategory(categoryService, logg))
			r.Put("/{id}", controllers.UpdateCategory(categoryService, logg))
			r.Delete("/{id}", controllers.DeleteCategory(categoryService, logg))
		})

		r.Route("/genres", func(r chi.Router) {
			r.Post("/", controllers.CreateGenre(genreService, logg))
			r.Get("/", controllers.ListGenres(genreService, logg))
			r.Get("/{id}", controllers.GetGenre(genreService, logg))
			r.Put("/{id}", controllers.UpdateGenre(genreService, logg))
			r.Delete("/{id}", controllers.DeleteGenre(genreService, logg))
		})

		r.Route("/cast_members", func(r chi.Router) {
			r.Post("/", controllers.CreateCastMember(castMemberService, logg))
			r.Get("/", controllers.ListCastMembers(castMemberService, logg))
			r.Get("/{id}", controllers.GetCastMember(castMemberService, logg))
			r.Put("/{id}", controllers.UpdateCastMember(castMemberService, logg))
			r.Delete("/{id}", controllers.DeleteCastMember(castMemberService, logg))
		})
	})

	return r
}
