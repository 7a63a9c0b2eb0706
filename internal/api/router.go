package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/middleware"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/config"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	catalogService *service.CatalogService,
	sessionService *service.SessionService,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	candidateHandler := handlers.NewCandidateHandler(catalogService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", candidateHandler.Candidates)
			r.Get("/detail", candidateHandler.CandidateDetail)
		})

		r.Route("/races", func(r chi.Router) {
			r.Get("/", candidateHandler.Races)
			r.Get("/groups", candidateHandler.RaceGroups)
		})

		r.Get("/summary", candidateHandler.Summary)

		r.Route("/session", func(r chi.Router) {
			sessionHandler := handlers.NewSessionHandler(sessionService)
			liveHandler := handlers.NewLiveHandler(sessionService, cfg.CORS.AllowedOrigins, logger)

			r.Post("/", sessionHandler.Create)
			r.Post("/restore", sessionHandler.Restore)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.End)
				r.Put("/race", sessionHandler.SetRace)
				r.Put("/query", sessionHandler.SetQuery)
				r.Post("/sort", sessionHandler.SetSort)
				r.Put("/view", sessionHandler.SetView)
				r.Post("/clear", sessionHandler.Clear)
				r.Post("/details", sessionHandler.OpenDetails)
				r.Delete("/details", sessionHandler.CloseDetails)
				r.Get("/token", sessionHandler.Token)
				r.Get("/live", liveHandler.Serve)
			})
		})

		r.Route("/data", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware(cfg.Auth.InternalAPIKey))
			dataHandler := handlers.NewDataHandler(catalogService, cfg.Data.CSVPath)
			r.Post("/reload", dataHandler.Reload)
		})
	})

	return r
}
