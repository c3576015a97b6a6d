// Package server exposes the diagram/flow REST contract over a Store.
//
// Every response uses the {success, message, data} envelope. Rendered
// SVG snapshots are cached; the cache key covers the serialized graph,
// so saving a diagram naturally invalidates its snapshot.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/isotrack/isotrack/pkg/cache"
	"github.com/isotrack/isotrack/pkg/store"
)

// Server serves the IsoTrack diagram and flow endpoints.
type Server struct {
	store   store.Store
	cache   cache.Cache
	logger  *log.Logger
	company string // branding stamped onto rendered snapshots
	ttl     time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithCache sets the snapshot cache. Defaults to a null cache.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithLogger sets the request logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithCompany sets the branding name used on rendered snapshots.
func WithCompany(name string) Option {
	return func(s *Server) { s.company = name }
}

// New creates a server over st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:   st,
		cache:   cache.NewNullCache(),
		logger:  log.Default(),
		company: "IsoTrack Root Company",
		ttl:     24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router for the REST contract.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.handleListDiagrams)
		r.Get("/{id}", s.handleGetDiagram)
		r.Get("/{id}/links", s.handleDiagramLinks)
		r.Get("/{id}/svg", s.handleDiagramSVG)
		r.Put("/{id}", s.handleSaveDiagram)
	})

	r.Route("/flows", func(r chi.Router) {
		r.Get("/", s.handleListFlows)
		r.Get("/{id}", s.handleGetFlow)
	})

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// decodeJSON decodes a request body, rejecting unknown fields so typos in
// payloads fail loudly instead of silently dropping data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
