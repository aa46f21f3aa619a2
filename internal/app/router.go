package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lagoon-stays/lagoon/internal/auth"
	"github.com/lagoon-stays/lagoon/internal/bookings"
	"github.com/lagoon-stays/lagoon/internal/observability"
	"github.com/lagoon-stays/lagoon/internal/rbac"
	"github.com/lagoon-stays/lagoon/internal/resorts"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthMiddleware  auth.Middleware
	Guard           rbac.Middleware
	AuthHandler     *auth.Handler
	ResortsHandler  *resorts.Handler
	BookingsHandler *bookings.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with Lagoon defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r, params.AuthMiddleware, params.Guard)
	})
	r.Route("/resorts", func(r chi.Router) {
		params.ResortsHandler.MountRoutes(r, params.AuthMiddleware, params.Guard)
	})
	r.Route("/bookings", func(r chi.Router) {
		params.BookingsHandler.MountRoutes(r, params.AuthMiddleware, params.Guard)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title":"Not Found","status":404,"detail":"route not found"}`))
	})

	return r
}
