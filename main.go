package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/msomdec/taskboard/internal/config"
	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/handler"
	"github.com/msomdec/taskboard/internal/repository/postgres"
	"github.com/msomdec/taskboard/internal/repository/sqlite"
	"github.com/msomdec/taskboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.Driver(), "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "driver", cfg.Driver())

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(db.Users(), tokens)
	taskService := service.NewTaskService(db.Tasks())

	limiter, err := newLoginLimiter(ctx, cfg)
	if err != nil {
		slog.Error("failed to create login limiter", "error", err)
		os.Exit(1)
	}
	defer limiter.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := handler.NewMetrics(registry)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Routes{
		Users:   userService,
		Tasks:   taskService,
		Tokens:  tokens,
		Limiter: limiter,
		Metrics: metrics,
	})

	var h http.Handler = mux
	h = metrics.Middleware(h)
	h = handler.RequestLogger(logger, h)
	h = handler.CORS(cfg.FrontendURL, h)
	h = handler.SecurityHeaders(h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openDatabase connects to the configured storage backend.
func openDatabase(ctx context.Context, cfg *config.Config) (domain.Database, error) {
	switch cfg.Driver() {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return sqlite.New(cfg.DatabasePath)
	}
}

type loginLimiter interface {
	handler.RateLimiter
	io.Closer
}

// newLoginLimiter returns a Redis-backed limiter shared across instances when
// REDIS_ADDR is set, and an in-process token bucket otherwise.
func newLoginLimiter(ctx context.Context, cfg *config.Config) (loginLimiter, error) {
	if cfg.RedisAddr == "" {
		return service.NewTokenBucket(cfg.LoginRate, float64(cfg.LoginBurst)), nil
	}

	// A fixed window of one minute admits roughly the same sustained rate.
	limit := cfg.LoginBurst + int(cfg.LoginRate*60)
	limiter, err := service.NewRedisLimiter(ctx, &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, limit, time.Minute)
	if err != nil {
		return nil, err
	}
	slog.Info("login throttling backed by redis", "addr", cfg.RedisAddr, "limit", limit)
	return limiter, nil
}
