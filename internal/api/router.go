package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoanghai1803/contentformer/internal/api/handlers"
	"github.com/hoanghai1803/contentformer/internal/config"
	"github.com/hoanghai1803/contentformer/internal/generation"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(svc *generation.Service, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS(cfg.Server.AllowedOrigins))

	r.Route("/api", func(api chi.Router) {
		api.Post("/test-connection", handlers.TestConnection(svc))
		api.Post("/generate-ideas", handlers.GenerateIdeas(svc))
		api.Post("/generate-script", handlers.GenerateScript(svc))
		api.Post("/refine-script", handlers.RefineScript(svc))
		api.Post("/regenerate-script", handlers.RegenerateScript(svc))
		api.Post("/generate-linkedin-post", handlers.GenerateLinkedInPost(svc))
	})

	r.Get("/health", handlers.Health())
	r.Handle("/metrics", promhttp.Handler())

	return r
}
