package rest

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/averaldo/permissions-app/internal/permission"
	"github.com/averaldo/permissions-app/internal/permissiontype"
	"github.com/averaldo/permissions-app/internal/transport/middleware"
	"github.com/averaldo/permissions-app/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RouterConfig carries everything route registration needs.
type RouterConfig struct {
	DB                *sql.DB
	PermissionHandler *permission.Handler
	TypeHandler       *permissiontype.Handler
	HealthChecks      map[string]func(ctx context.Context) error
	AllowedOrigins    string
	Logger            *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig) {
	checks := make(map[string]PingChecker, len(cfg.HealthChecks))
	for name, check := range cfg.HealthChecks {
		checks[name] = check
	}
	healthHandler := NewHealthHandler(cfg.DB, checks)

	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(cfg.Logger))
	router.Use(middleware.RecoveryMiddleware(cfg.Logger))

	// OpenAPI spec at root plus the Swagger UI
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// the web client consumes everything under /api
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if cfg.PermissionHandler != nil {
			r.Route("/permissions", func(pr chi.Router) {
				pr.Get("/", cfg.PermissionHandler.GetPermissions)
				pr.Get("/search", cfg.PermissionHandler.SearchPermissions)
				pr.Get("/{id}", cfg.PermissionHandler.GetPermission)
				pr.Post("/request", cfg.PermissionHandler.CreatePermission)
				pr.Put("/{id}", cfg.PermissionHandler.UpdatePermission)
			})
		}

		if cfg.TypeHandler != nil {
			r.Route("/permissions-type", func(tr chi.Router) {
				tr.Get("/", cfg.TypeHandler.GetPermissionTypes)
				tr.Get("/{id}", cfg.TypeHandler.GetPermissionType)
			})
		}
	})
}
