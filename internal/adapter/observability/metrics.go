package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	ApplicationsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Total number of application submissions by outcome",
		},
		[]string{"outcome"},
	)
	ApplicationsWithdrawnTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_withdrawn_total",
			Help: "Total number of withdrawn applications",
		},
	)
	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_status_transitions_total",
			Help: "Total number of status transitions by target status",
		},
		[]string{"status"},
	)
	ResumeResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_resolutions_total",
			Help: "Total number of resume reference resolutions by outcome",
		},
		[]string{"outcome"},
	)
	ResumeCleanupTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_cleanup_cleared_total",
			Help: "Total number of corrupt resume references cleared by maintenance sweeps",
		},
	)
	FileUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_uploads_total",
			Help: "Total number of file uploads by outcome",
		},
		[]string{"outcome"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(ApplicationsSubmittedTotal)
	prometheus.MustRegister(ApplicationsWithdrawnTotal)
	prometheus.MustRegister(StatusTransitionsTotal)
	prometheus.MustRegister(ResumeResolutionsTotal)
	prometheus.MustRegister(ResumeCleanupTotal)
	prometheus.MustRegister(FileUploadsTotal)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}
