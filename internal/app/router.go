package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/handler"
	"github.com/EuclidesAnchundia/Tutorias/internal/ingest"
	"github.com/EuclidesAnchundia/Tutorias/internal/metrics"
	"github.com/EuclidesAnchundia/Tutorias/internal/middleware"
)

// maxBodyBytes leaves room for multipart framing around a maximal upload.
const maxBodyBytes = ingest.MaxSize + 1<<20

func (a *App) Router() http.Handler {
	authMiddleware := middleware.NewAuthMiddleware(a.Config.JWTSecret, a.Config.JWTIssuer, a.Store)

	r := chi.NewRouter()
	r.Use(logging.NewHTTPMiddleware(a.Logger))
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics)
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, maxBodyBytes)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	handler.NewAuthHandler(a.Auth).RegisterRoutes(r, authMiddleware)
	handler.NewNotificationHandler(a.Store).RegisterRoutes(r, authMiddleware)
	handler.NewTutoringHandler(a.Tutoring, a.Store).RegisterRoutes(r, authMiddleware)
	return r
}
