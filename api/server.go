/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. Metrics:    Prometheus counters and latency histograms
  4. CORS:       Cross-origin requests for the frontend
  5. Auth:       Bearer-token authentication (API routes only)

ROUTE GROUPS:
  /api/login       Public: credential exchange
  /api/me          Authenticated: own record
  /api/employees/* Admin only
  /api/contracts/* Authenticated; mutations admin-enforced in domain
  /api/vacations/* Authenticated
  /metrics         Prometheus scrape endpoint
  /api/health      Liveness probe

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/warp/leavedesk/auth"
)

// RouterConfig carries the router's external knobs.
type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, tm *auth.TokenManager, log *logrus.Logger, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/login", h.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tm, log))

			r.Get("/me", h.Me)

			r.Route("/employees", func(r chi.Router) {
				// Reading a single record is admin-or-self; the handler
				// checks ownership. Everything else is admin only.
				r.Get("/{id}", h.GetEmployee)
				r.Group(func(r chi.Router) {
					r.Use(auth.RequireAdmin)
					r.Get("/", h.ListEmployees)
					r.Post("/", h.CreateEmployee)
					r.Put("/{id}", h.UpdateEmployee)
					r.Delete("/{id}", h.DeleteEmployee)
				})
			})

			// Admin-only mutations are enforced by the lifecycles so the
			// domain owns the rule; the router only authenticates.
			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", h.ListContracts)
				r.Post("/", h.CreateContract)
				r.Get("/{id}", h.GetContract)
				r.Put("/{id}", h.UpdateContract)
				r.Delete("/{id}", h.DeleteContract)
			})

			r.Route("/vacations", func(r chi.Router) {
				r.Get("/", h.ListVacations)
				r.Post("/", h.CreateVacation)
				r.Get("/{id}", h.GetVacation)
				r.Put("/{id}", h.UpdateVacation)
				r.Delete("/{id}", h.DeleteVacation)
			})
		})
	})

	return r
}
