// Package server exposes the template library and timeline engine over HTTP.
//
// The server holds the library in an atomic pointer so a file watcher can
// swap in a freshly loaded store without interrupting in-flight requests.
// Timeline and suggestion responses are cached keyed by the library content
// hash, so a reload naturally invalidates stale entries.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/tannerbroberts/abouttime/pkg/cache"
	"github.com/tannerbroberts/abouttime/pkg/errors"
	"github.com/tannerbroberts/abouttime/pkg/observability"
	"github.com/tannerbroberts/abouttime/pkg/template"
)

// Config configures a Server.
type Config struct {
	Addr   string
	Logger *log.Logger
	Cache  cache.Cache
	Keyer  cache.Keyer

	// RateLimit is the sustained requests-per-second allowance across
	// all clients. Zero disables limiting.
	RateLimit float64
	RateBurst int

	// CacheTTL bounds how long computed responses live in the cache.
	CacheTTL time.Duration
}

// Server serves the template library API.
type Server struct {
	cfg     Config
	logger  *log.Logger
	store   atomic.Pointer[template.Store]
	hash    atomic.Value // string
	cache   cache.Cache
	keyer   cache.Keyer
	limiter *rate.Limiter
}

// New creates a Server over an initial store. The store may be swapped
// later via Swap; hash identifies the library content for cache keys.
func New(cfg Config, store *template.Store, hash string) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		cache:  cfg.Cache,
		keyer:  cfg.Keyer,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit)
			if burst < 1 {
				burst = 1
			}
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	s.Swap(store, hash)
	return s
}

// Swap atomically replaces the served store and its content hash.
// Safe to call concurrently with request handling.
func (s *Server) Swap(store *template.Store, hash string) {
	s.store.Store(store)
	s.hash.Store(hash)
	observability.Engine().OnLibraryReload(context.Background(), store.Len(), hash)
	s.logger.Info("library swapped", "templates", store.Len(), "hash", shortHash(hash))
}

func (s *Server) currentStore() *template.Store { return s.store.Load() }
func (s *Server) currentHash() string           { return s.hash.Load().(string) }

// Handler builds the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.limiter != nil {
		r.Use(s.rateLimit)
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.handleTemplates)
		r.Get("/templates/{id}", s.handleTemplate)
		r.Get("/templates/{id}/timeline", s.handleTimeline)
		r.Get("/suggest", s.handleSuggest)
	})
	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)
	s.writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeTemplateNotFound, errors.ErrCodeLibraryNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidTemplate, errors.ErrCodeInvalidLibrary,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidQuery:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
