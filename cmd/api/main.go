// Package main is the entrypoint for the tickbox API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tickbox/tickbox/internal/auth"
	"github.com/tickbox/tickbox/internal/cache"
	"github.com/tickbox/tickbox/internal/config"
	"github.com/tickbox/tickbox/internal/handler"
	"github.com/tickbox/tickbox/internal/metrics"
	"github.com/tickbox/tickbox/internal/middleware"
	"github.com/tickbox/tickbox/internal/server"
	"github.com/tickbox/tickbox/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return errors.New("store unavailable")
	}
	logger.Info("store opened", "kind", string(st.kind))

	var (
		redisClient *cache.Cache
		limiter     middleware.Limiter
		redisHealth handler.HealthChecker
	)
	if cfg.RedisURL != "" {
		redisClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			st.close()
			logger.Error("failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return errors.New("redis unavailable")
		}
		redisHealth = redisClient
		logger.Info("connected to Redis")
		if cfg.RateLimitEnabled() {
			limiter = cache.NewWindowLimiter(redisClient, "auth", cfg.RateLimitAuthPerMinute, time.Minute)
		}
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		st.close()
		return fmt.Errorf("token manager: %w", err)
	}

	recorder := metrics.NewInMemory()
	authService := service.NewAuthService(st, auth.NewHasher(cfg.BcryptCost), tokens, recorder)
	todoService := service.NewTodoService(st, recorder)

	router := handler.NewRouter(handler.RouterConfig{
		Logger:        logger,
		Auth:          authService,
		Todos:         todoService,
		Health:        handler.NewHealthHandler(st, redisHealth),
		Metrics:       recorder,
		AuthLimiter:   limiter,
		CORSOrigins:   cfg.GetCORSAllowedOrigins(),
		IsDevelopment: cfg.IsDevelopment(),
		MaxBodySize:   cfg.MaxRequestBodySize,
	})

	srv := server.New(router, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("store", func(context.Context) error { return st.close() })
	if redisClient != nil {
		srv.OnShutdown("redis", func(context.Context) error { return redisClient.Close() })
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"rate_limit", limiter != nil,
		"token_ttl", cfg.JWTTTL.String(),
	)

	return srv.Run(ctx)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "tickbox")
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
