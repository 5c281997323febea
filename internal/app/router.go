// Package app wires configuration, adapters and the HTTP surface together.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/careerflowhq/careerflow-api/internal/adapter/httpserver"
	"github.com/careerflowhq/careerflow-api/internal/adapter/observability"
	"github.com/careerflowhq/careerflow-api/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	// Security & instrumentation middleware
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(cfg.RequestTimeout))
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limit mutating endpoints
	r.Group(func(wr chi.Router) {
		wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		wr.Post("/v1/users/sync", srv.SyncUserHandler())
		wr.Post("/v1/jobs", srv.PostJobHandler())
		wr.Post("/v1/jobs/{id}/close", srv.CloseJobHandler())
		wr.Post("/v1/jobs/{id}/recount", srv.RecountJobHandler())
		wr.Post("/v1/applications", srv.CreateApplicationHandler())
		wr.Post("/v1/applications/validate-step", srv.ValidateStepHandler())
		wr.Post("/v1/applications/quick-apply", srv.QuickApplyHandler())
		wr.Post("/v1/applications/{id}/status", srv.UpdateStatusHandler())
		wr.Post("/v1/applications/{id}/withdraw", srv.WithdrawHandler())
		wr.Post("/v1/applications/cleanup-resume-urls", srv.CleanupResumeURLsHandler())
		wr.Post("/v1/files/upload-url", srv.RequestUploadHandler())
		wr.Put("/v1/files/{ticket}", srv.UploadHandler())
	})
	// Read-only endpoints
	r.Get("/v1/users/{socialId}", srv.GetUserHandler())
	r.Get("/v1/jobs", srv.ListJobsHandler())
	r.Get("/v1/jobs/{id}", srv.GetJobHandler())
	r.Get("/v1/applications/has-applied", srv.HasAppliedHandler())
	r.Get("/v1/applications/by-user/{socialId}", srv.ListApplicationsByUserHandler())
	r.Get("/v1/applications/by-job/{jobId}", srv.ListApplicationsByJobHandler())
	r.Get("/v1/files/{id}/download", srv.DownloadHandler())

	// Health and metrics
	r.Get("/healthz", httpserver.HealthzHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })
	r.Get("/readyz", srv.ReadyzHandler())

	return httpserver.SecurityHeaders(r)
}
