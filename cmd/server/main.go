// Command server starts the CareerFlow API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerflowhq/careerflow-api/internal/adapter/events/redpanda"
	httpserver "github.com/careerflowhq/careerflow-api/internal/adapter/httpserver"
	"github.com/careerflowhq/careerflow-api/internal/adapter/observability"
	"github.com/careerflowhq/careerflow-api/internal/adapter/repo/postgres"
	"github.com/careerflowhq/careerflow-api/internal/adapter/ticketstore"
	"github.com/careerflowhq/careerflow-api/internal/app"
	"github.com/careerflowhq/careerflow-api/internal/config"
	"github.com/careerflowhq/careerflow-api/internal/domain"
	"github.com/careerflowhq/careerflow-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Infra: DB pool
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.DBURL, cfg.DBConnectMaxWait)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		slog.Error("schema setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepo(pool)
	companyRepo := postgres.NewCompanyRepo(pool)
	jobRepo := postgres.NewJobRepo(pool)
	appRepo := postgres.NewApplicationRepo(pool)
	fileRepo := postgres.NewFileRepo(pool)

	// Redis: one-shot upload tickets
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = rdb.Close() }()
	tickets := ticketstore.New(rdb)

	// Event producer (Redpanda), optional
	var producer *redpanda.Producer
	if cfg.EventsEnabled {
		producer, err = redpanda.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			slog.Error("event producer connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer producer.Close()
	} else {
		slog.Info("application events disabled")
	}

	// Usecases
	profileSvc := usecase.NewProfileService(userRepo)
	jobSvc := usecase.NewJobService(jobRepo, companyRepo, appRepo)
	var publisher domain.EventPublisher
	if producer != nil {
		publisher = producer
	}
	appSvc := usecase.NewApplicationService(userRepo, jobRepo, appRepo, publisher)
	resolver := usecase.NewResumeResolver(fileRepo)
	querySvc := usecase.NewApplicationQueryService(userRepo, jobRepo, companyRepo, appRepo, resolver)
	submitSvc := usecase.NewSubmissionService(userRepo, fileRepo, appSvc)
	fileSvc := usecase.NewFileService(fileRepo, tickets, cfg.BaseURL, cfg.MaxUploadMB)

	// Readiness checks
	var broker app.BrokerPinger
	if producer != nil {
		broker = producer
	}
	dbCheck, redisCheck, brokerCheck := app.BuildReadinessChecks(pool, rdb, broker)

	// HTTP server
	srv := httpserver.NewServer(cfg, profileSvc, jobSvc, appSvc, querySvc, submitSvc, fileSvc)
	srv.DBCheck = dbCheck
	srv.RedisCheck = redisCheck
	srv.KafkaCheck = brokerCheck

	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
