// Package server implements the live preview HTTP server.
//
// A preview session holds one built scene: its document container, layout
// root and label index. Clients create a session by posting a TOML scene,
// drive it with resize, debug and visibility requests, and fetch the
// current state in any render format:
//
//	POST   /sessions                      create from a TOML body
//	GET    /sessions                      list sessions
//	GET    /sessions/{id}                 session info (JSON)
//	GET    /sessions/{id}.{format}        svg, html, png, pdf, json, dot, tree
//	POST   /sessions/{id}/resize?w=&h=    resize the container
//	POST   /sessions/{id}/debug?node=     toggle debug (default root)
//	POST   /sessions/{id}/visibility?node=
//	DELETE /sessions/{id}
//	POST   /render?format=&w=&h=          stateless, cached render
//
// Layout trees are single threaded; every session request holds the
// session's mutex for its whole duration.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/anchorui/pkg/pipeline"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
	"github.com/matzehuels/anchorui/pkg/ui"
)

// Defaults for [Config].
const (
	DefaultMaxSessions = 64
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxBody     = 1 << 20
)

// Config configures a Server.
type Config struct {
	Logger *log.Logger
	// Runner renders stateless /render requests; its cache is shared by
	// every request.
	Runner *pipeline.Runner

	MaxSessions int           // oldest idle session is evicted beyond this
	SessionTTL  time.Duration // idle sessions are swept after this
	MaxBody     int64         // scene body limit in bytes

	// Document options for new sessions.
	Measurer dom.Measurer
	Fetcher  dom.Fetcher
	NoImages bool
	// IDs allocates node ids for sessions. Nil uses the process-wide
	// allocator.
	IDs *ui.IDAllocator
}

// Server is the preview server.
type Server struct {
	cfg      Config
	logger   *log.Logger
	sessions *store
	router   chi.Router
}

// New creates a Server with defaults applied.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBody
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: newStore(cfg.MaxSessions),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/render", s.handleRender)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{sid}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/resize", s.handleResize)
			r.Post("/debug", s.handleDebug)
			r.Post("/visibility", s.handleVisibility)
		})
	})
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Len returns the number of live sessions.
func (s *Server) Len() int { return s.sessions.len() }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Idle sessions are swept once a minute.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepLoop(ctx, time.Minute)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("preview server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.sessions.closeAll()
	return nil
}

func (s *Server) sweepLoop(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.sessions.sweep(now.Add(-s.cfg.SessionTTL)); n > 0 {
				s.logger.Debug("swept idle sessions", "count", n)
			}
		}
	}
}
