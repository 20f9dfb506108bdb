package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ramonskie/mediareaparr/internal/api/handlers"
	mw "github.com/ramonskie/mediareaparr/internal/api/middleware"
	"github.com/ramonskie/mediareaparr/internal/services"
	"github.com/ramonskie/mediareaparr/internal/storage"
)

// RouterDependencies holds dependencies for the router
type RouterDependencies struct {
	AuthService *services.AuthService
	Runner      *services.Runner
	RunStore    *storage.RunStore

	// OnSettingsUpdated is called after a settings save, so the scheduler
	// can pick up a changed cron expression.
	OnSettingsUpdated func()
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps *RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(middleware.Timeout(5 * time.Minute))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	settingsHandler := handlers.NewSettingsHandler(deps.Runner, deps.OnSettingsUpdated)
	runsHandler := handlers.NewRunsHandler(deps.Runner, deps.RunStore)

	// Public routes
	r.Get("/health", healthHandler.Handle)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public API routes
		r.Post("/auth/login", authHandler.Login)

		// Protected API routes
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			// Run routes - specific endpoints before anything parameterized
			r.Route("/runs", func(r chi.Router) {
				r.Post("/trigger", runsHandler.Trigger)
				r.Get("/", runsHandler.List)
				r.Get("/latest", runsHandler.Latest)
				r.Get("/summary", runsHandler.Summary)
				r.Get("/preview", runsHandler.Preview)
			})

			// Settings routes
			r.Get("/settings", settingsHandler.GetSettings)
			r.Put("/settings", settingsHandler.UpdateSettings)
			r.Post("/settings/test-connection", settingsHandler.TestConnection)
		})
	})

	return r
}
