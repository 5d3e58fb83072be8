package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/demobank/demobank/internal/adapter/http/handler"
	"github.com/demobank/demobank/internal/adapter/http/middleware"
	"github.com/demobank/demobank/internal/infrastructure/auth"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	AuthHandler        *handler.AuthHandler
	DemoHandler        *handler.DemoHandler
	HealthHandler      *handler.HealthHandler
	Tokens             *auth.JWTManager
	AuthEnabled        bool
	SimulatedLatency   time.Duration
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SimulatedLatency(cfg.SimulatedLatency))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/register", cfg.AuthHandler.Register)
		})

		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled && cfg.Tokens != nil {
				authMiddleware := middleware.NewAuthMiddleware(cfg.Tokens)
				r.Use(authMiddleware.Wrap)
			}

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Get("/{id}/transactions", cfg.AccountHandler.ListTransactions)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/emit", cfg.TransactionHandler.Emit)
				r.Get("/{id}", cfg.TransactionHandler.Get)
			})

			r.Route("/demo", func(r chi.Router) {
				r.Post("/reset", cfg.DemoHandler.Reset)
				r.Post("/reset-user", cfg.DemoHandler.ResetUser)
			})
		})
	})

	return r
}
