package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/codelabs/catalog-backend/api/routes"
	"github.com/codelabs/catalog-backend/internal/castmember"
	"github.com/codelabs/catalog-backend/internal/category"
	"github.com/codelabs/catalog-backend/internal/genre"
	"github.com/codelabs/catalog-backend/internal/video"
	"github.com/codelabs/catalog-backend/pkg/config"
	"github.com/codelabs/catalog-backend/pkg/db"
	"github.com/codelabs/catalog-backend/pkg/logger"
	"github.com/codelabs/catalog-backend/pkg/migrate"
	"github.com/codelabs/catalog-backend/pkg/storage/s3"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	store, err := s3.New(context.Background(), s3.Config{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Endpoint:        cfg.Storage.Endpoint,
		UsePathStyle:    cfg.Storage.UsePathStyle,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap media storage", err)
		os.Exit(1)
	}

	mediaResources, err := video.NewResources(store, cfg.Media)
	if err != nil {
		logg.Error(context.Background(), "failed to configure media resources", err)
		os.Exit(1)
	}

	categoryRepo := category.NewRepository(dbClient.DB())
	genreRepo := genre.NewRepository(dbClient.DB())
	castMemberRepo := castmember.NewRepository(dbClient.DB())
	videoRepo := video.NewRepository(dbClient.DB())

	categoryService, err := category.NewService(categoryRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	genreService, err := genre.NewService(genreRepo, categoryRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create genre service", err)
		os.Exit(1)
	}

	castMemberService, err := castmember.NewService(castMemberRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cast member service", err)
		os.Exit(1)
	}

	videoService, err := video.NewService(videoRepo, mediaResources, categoryRepo, genreRepo, castMemberRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create video service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, store, videoService, categoryService, genreService, castMemberService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
