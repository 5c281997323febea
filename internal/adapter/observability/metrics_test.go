package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	handler := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/jobs", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	// Counter for this route/status combination must exist after the request.
	m, err := HTTPRequestsTotal.GetMetricWithLabelValues("/v1/jobs", http.MethodGet, "418")
	require.NoError(t, err)
	assert.NotNil(t, m)
}
