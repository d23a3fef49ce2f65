package controllers

import (
	"context"
	"net/http"

	"github.com/codelabs/catalog-backend/api/responses"
	"github.com/codelabs/catalog-backend/pkg/config"
)

// Pinger matches dependencies that expose a readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, dbP, blobP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)

		status := map[string]string{"status": "ready"}
		degraded := false

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				status["db"] = "down"
				degraded = true
			}
		}
		if blobP != nil {
			if err := blobP.Ping(r.Context()); err != nil {
				status["storage"] = "down"
				degraded = true
			}
		}

		if degraded {
			status["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
