package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/careerflowhq/careerflow-api/internal/adapter/httpserver"
	"github.com/careerflowhq/careerflow-api/internal/config"
)

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, ParseOrigins(""))
	assert.Equal(t, []string{"*"}, ParseOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		ParseOrigins(" https://a.example , https://b.example "))
	assert.Equal(t, []string{"*"}, ParseOrigins(" , "))
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		AppEnv:           "test",
		CORSAllowOrigins: "*",
		RateLimitPerMin:  1000,
		RequestTimeout:   5 * time.Second,
	}
	srv := &httpserver.Server{Cfg: cfg}
	return BuildRouter(cfg, srv)
}

func TestRouter_Healthz(t *testing.T) {
	h := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_Metrics(t *testing.T) {
	h := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestBuildReadinessChecks(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	dbCheck, redisCheck, brokerCheck := BuildReadinessChecks(stubPinger{}, rdb, stubPinger{err: errors.New("broker down")})

	ctx := context.Background()
	assert.NoError(t, dbCheck(ctx))
	assert.NoError(t, redisCheck(ctx))
	assert.EqualError(t, brokerCheck(ctx), "broker down")
}

func TestBuildReadinessChecks_Unconfigured(t *testing.T) {
	dbCheck, redisCheck, brokerCheck := BuildReadinessChecks(nil, nil, nil)

	ctx := context.Background()
	assert.Error(t, dbCheck(ctx))
	assert.Error(t, redisCheck(ctx))
	assert.Nil(t, brokerCheck)
}
