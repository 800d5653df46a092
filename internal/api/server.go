// Package api exposes the recommendation engine over HTTP with JSON
// request/response bodies.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"bookrec/config"
	"bookrec/internal/usecase"
)

// Server holds the HTTP surface over an engine.
type Server struct {
	engine *usecase.Engine
	cfg    *config.Config
	log    *slog.Logger
	router chi.Router
}

// NewServer creates a Server and mounts all routes.
func NewServer(engine *usecase.Engine, cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		engine: engine,
		cfg:    cfg,
		log:    log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealthz)
	r.Post("/ingest/csv", s.handleIngestCSV)
	r.Get("/books", s.handleListBooks)
	r.Post("/classify", s.handleClassify)
	r.Post("/recommend", s.handleRecommend)

	r.Post("/function1/preprocess", s.handlePreprocess)
	r.Post("/function2/classify-genres", s.handleClassifyGenres)
	r.Post("/function3/analyze-popularity", s.handleAnalyzePopularity)
	r.Post("/function4/enhanced-recommendation", s.handleEnhancedRecommendation)

	r.Post("/feedback", s.handleSubmitFeedback)
	r.Get("/feedback/insights", s.handleFeedbackInsights)
	r.Get("/system/status", s.handleSystemStatus)

	s.router = r
	return s
}

// Router returns the mounted handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("http server listening", "addr", s.cfg.Server.Addr)
	return http.ListenAndServe(s.cfg.Server.Addr, s.router)
}
