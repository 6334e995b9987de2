package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tickbox/tickbox/internal/metrics"
	"github.com/tickbox/tickbox/internal/middleware"
	"github.com/tickbox/tickbox/internal/service"
)

// RouterConfig wires the services and interceptors behind the API.
type RouterConfig struct {
	Logger  *slog.Logger
	Auth    *service.AuthService
	Todos   *service.TodoService
	Health  *HealthHandler
	Metrics metrics.Snapshotter

	// AuthLimiter throttles /signup and /signin per client IP; nil disables it.
	AuthLimiter middleware.Limiter

	CORSOrigins   []string
	IsDevelopment bool
	MaxBodySize   int64
}

// NewRouter builds the HTTP routes. Interceptors run in the order listed:
// RealIP, RequestID, Logger, Recoverer, Security, CORS, MaxBodySize, then
// RateLimit on auth routes and BearerAuth on protected routes.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandler := NewAuthHandler(cfg.Auth, logger)
	todoHandler := NewTodoHandler(cfg.Todos, logger)
	metricsHandler := NewMetricsHandler(cfg.Metrics)
	health := cfg.Health
	if health == nil {
		health = NewHealthHandler(nil, nil)
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(middleware.MaxBodySize(cfg.MaxBodySize))

	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitIP(middleware.RateLimitConfig{
			Logger:  logger,
			Limiter: cfg.AuthLimiter,
			Scope:   "auth",
		}))
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(middleware.AuthConfig{
			Logger:   logger,
			Verifier: cfg.Auth,
		}))
		r.Get("/user", authHandler.User)
		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Put("/{id}", todoHandler.Update)
			r.Delete("/{id}", todoHandler.Delete)
		})
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}
