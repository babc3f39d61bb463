package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/safetrip/safetrip/internal/api/handlers"
	"github.com/safetrip/safetrip/internal/api/middleware"
	"github.com/safetrip/safetrip/internal/config"
	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/service"
)

// NewRouter wires the HTTP surface. The health callback probes the store
// without reconnecting; a nil callback reports healthy.
func NewRouter(services *service.Services, health func(r *http.Request) error, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if health != nil {
			if err := health(req); err != nil {
				http.Error(w, "store unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, logger)
	spotHandler := handlers.NewSpotHandler(services.Spot, logger)
	applicationHandler := handlers.NewApplicationHandler(services.Application, logger)
	adminHandler := handlers.NewAdminHandler(services.Spot, services.Application, logger)

	// Credential endpoints, rate limited against brute force
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.AuthRateLimit, time.Minute))
		r.Post("/account", authHandler.Register)
		r.Post("/session", authHandler.Login)
	})

	// Public catalog reads
	r.Get("/spots", spotHandler.List)
	r.Get("/spots/{id}", spotHandler.Get)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Tokens, domain.RoleUser))
		r.Get("/session/me", authHandler.Me)
		r.Post("/applications", applicationHandler.Submit)
		r.Get("/applications/mine", applicationHandler.Mine)
	})

	// Administrative routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(services.Tokens, domain.RoleAdmin))
		r.Post("/spots", adminHandler.CreateSpot)
		r.Get("/applications", adminHandler.ListApplications)
		r.Patch("/applications/{id}", adminHandler.UpdateApplicationStatus)
	})

	return r
}
