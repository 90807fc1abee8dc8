package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/umputun/postdigest/pkg/collector"
	"github.com/umputun/postdigest/pkg/config"
	"github.com/umputun/postdigest/pkg/digest"
	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/feed"
	"github.com/umputun/postdigest/pkg/metrics"
	"github.com/umputun/postdigest/pkg/render"
	"github.com/umputun/postdigest/pkg/repository"
	"github.com/umputun/postdigest/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/source_manager.go -pkg mocks -skip-ensure -fmt goimports . SourceManager

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	scheduler Scheduler
	sources   SourceManager
	version   string
	debug     bool

	renderer *render.Renderer
	feed     *feed.Generator
	gatherer prometheus.Gatherer

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	ListDigests(ctx context.Context, limit, offset int) ([]domain.Digest, int64, error)
	GetDigestView(ctx context.Context, id int64) (*domain.DigestView, error)
	GetDigestViewBySlug(ctx context.Context, slug string) (*domain.DigestView, error)
	GetPosts(ctx context.Context, filter repository.PostFilter) ([]domain.Post, error)
	GetStats(ctx context.Context) (*domain.Stats, error)
	GetSources(ctx context.Context, activeOnly bool) ([]domain.Source, error)
	SetSourceActive(ctx context.Context, id int64, active bool) error
}

// Scheduler interface for on-demand operations
type Scheduler interface {
	BuildDigestNow(ctx context.Context, date time.Time) (digest.BuildResult, error)
	EnrichDigestNow(ctx context.Context, digestID int64) (digest.EnrichResult, error)
	CollectNow(ctx context.Context) (scheduler.CollectResult, error)
	Yesterday() time.Time
	Jobs() []scheduler.JobInfo
}

// SourceManager registers new sources
type SourceManager interface {
	AddSource(ctx context.Context, handle, feedURL string) (*domain.Source, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFullConfig() *config.Config
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, sched Scheduler, sources SourceManager, version string, debug bool) (*Server, error) {
	site := cfg.GetFullConfig().Server
	renderer, err := render.New(site.Title, site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("make renderer: %w", err)
	}

	s := &Server{
		config:    cfg,
		db:        db,
		scheduler: sched,
		sources:   sources,
		version:   version,
		debug:     debug,
		renderer:  renderer,
		feed:      feed.NewGenerator(site.BaseURL, site.Title),
		gatherer:  prometheus.DefaultGatherer,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// manual builds and enrichment run inside the request
		WriteTimeout: 10 * timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("postdigest", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /stats", s.statsHandler)

		r.HandleFunc("GET /digests", s.listDigestsHandler)
		r.HandleFunc("GET /digests/{id}", s.getDigestHandler)
		r.HandleFunc("GET /digests/slug/{slug}", s.getDigestBySlugHandler)
		r.HandleFunc("POST /digests/build", s.buildDigestHandler)
		r.HandleFunc("POST /digests/{id}/enrich", s.enrichDigestHandler)

		r.HandleFunc("GET /posts", s.postsHandler)
		r.HandleFunc("POST /collect", s.collectHandler)

		r.HandleFunc("GET /sources", s.listSourcesHandler)
		r.HandleFunc("POST /sources", s.addSourceHandler)
		r.HandleFunc("PUT /sources/{id}/active", s.setSourceActiveHandler)
	})

	s.router.HandleFunc("GET /{$}", s.indexHandler)
	s.router.HandleFunc("GET /digest/{slug}", s.digestPageHandler)
	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)
	s.router.HandleFunc("GET /metrics", s.metricsHandler)
}

// metricsHandler exposes prometheus metrics of the gatherer
func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	metrics.Handler(s.gatherer).ServeHTTP(w, r)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

// errorCode maps domain errors to http status codes
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, collector.ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
