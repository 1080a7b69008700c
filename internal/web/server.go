package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/catalog"
	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/logging"
	"github.com/ziadkadry99/docview/internal/viewer"
)

// Config holds server configuration.
type Config struct {
	Port        int
	AllowAll    bool // allow all CORS origins (dev mode)
	ProjectName string
	DefaultLink string
	Extension   string
	RacePolicy  viewer.RacePolicy
}

// Server serves the viewer over HTTP: rendered pages, live sessions and
// the catalog API.
type Server struct {
	cfg        Config
	source     catalog.Source
	fetcher    fetch.Fetcher
	loader     *viewer.Loader
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. The fetcher backs /raw; loader renders content.
func New(cfg Config, source catalog.Source, fetcher fetch.Fetcher, loader *viewer.Loader, logger *zap.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		source:  source,
		fetcher: fetcher,
		loader:  loader,
		logger:  logging.OrNop(logger),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Sessions live as long as their socket, so they sit outside the timeout.
	r.Get("/ws", s.handleSession)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/", s.handlePage)
		r.Get("/assets/{name}", s.handleAsset)
		r.Get("/api/catalog", s.handleCatalog)
		r.Get("/raw/*", s.handleRaw)
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// controllerOptions configures a controller that auto-selects link.
func (s *Server) controllerOptions(link string, logger *zap.Logger) []viewer.Option {
	return []viewer.Option{
		viewer.WithDefaultLink(link),
		viewer.WithExtension(s.cfg.Extension),
		viewer.WithRacePolicy(s.cfg.RacePolicy),
		viewer.WithLogger(logger),
	}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("docview server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
