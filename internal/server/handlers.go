package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatTree: "image/svg+xml",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

type sessionInfo struct {
	ID      string    `json:"id"`
	Label   string    `json:"label,omitempty"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Nodes   int       `json:"nodes"`
	Created time.Time `json:"created"`
}

func info(sess *session) sessionInfo {
	l := sess.layout
	w, h := l.Doc.ContentSize()
	return sessionInfo{
		ID:      sess.id,
		Label:   l.Root.Label(),
		Width:   w,
		Height:  h,
		Nodes:   l.Root.Len(),
		Created: sess.created,
	}
}

// options reads the scene body and the w, h and debug query parameters.
func (s *Server) options(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBody))
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene")
	}
	opts := pipeline.Options{
		Scene:    body,
		Measurer: s.cfg.Measurer,
		Fetcher:  s.cfg.Fetcher,
		NoImages: s.cfg.NoImages,
		Logger:   s.logger,
		IDs:      s.cfg.IDs,
	}
	q := r.URL.Query()
	if opts.Width, opts.Height, err = querySize(q.Get("w"), q.Get("h")); err != nil {
		return opts, err
	}
	opts.Debug = q.Get("debug") == "true" || q.Get("debug") == "1"
	opts.Detailed = q.Get("detailed") == "true" || q.Get("detailed") == "1"
	return opts, nil
}

func querySize(ws, hs string) (float64, float64, error) {
	if ws == "" && hs == "" {
		return 0, 0, nil
	}
	w, errW := strconv.ParseFloat(ws, 64)
	h, errH := strconv.ParseFloat(hs, 64)
	if errW != nil || errH != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidSize, "size needs numeric w and h, got %q x %q", ws, hs)
	}
	if err := errors.ValidateSize(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := pipeline.Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := s.sessions.add(l)
	s.logger.Info("session created", "id", sess.id, "nodes", l.Root.Len())

	w.Header().Set("Location", "/sessions/"+sess.id)
	writeJSON(w, http.StatusCreated, info(sess))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	out := []sessionInfo{}
	for _, sess := range s.sessions.list() {
		sess.mu.Lock()
		if !sess.closed {
			out = append(out, info(sess))
		}
		sess.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGet serves session info for "/sessions/{id}" and a rendered
// artifact for "/sessions/{id}.{format}".
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, format := splitFormat(chi.URLParam(r, "sid"))
	if format != "" {
		if err := pipeline.ValidateFormat(format); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	sess, err := s.sessions.acquire(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer sess.mu.Unlock()

	if format == "" {
		writeJSON(w, http.StatusOK, info(sess))
		return
	}
	opts := pipeline.Options{Detailed: r.URL.Query().Get("detailed") == "true"}
	if sc, err := strconv.ParseFloat(r.URL.Query().Get("scale"), 64); err == nil {
		opts.Scale = sc
	}
	data, err := pipeline.RenderFormat(r.Context(), sess.layout, format, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func splitFormat(param string) (id, format string) {
	if i := strings.LastIndexByte(param, '.'); i > 0 {
		return param[:i], param[i+1:]
	}
	return param, ""
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sid")
	if err := s.sessions.remove(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session closed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleResize changes the container size, which drives the root's
// resize notification.
func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, height, err := querySize(q.Get("w"), q.Get("h"))
	if err == nil && width == 0 {
		err = errors.New(errors.ErrCodeInvalidSize, "w and h are required")
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.acquire(chi.URLParam(r, "sid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer sess.mu.Unlock()

	sess.layout.Resize(width, height)
	writeJSON(w, http.StatusOK, info(sess))
}

type nodeState struct {
	ID      uint64 `json:"id"`
	Label   string `json:"label"`
	Box     string `json:"box"`
	Debug   bool   `json:"debug"`
	Visible bool   `json:"visible"`
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, "debug")
}

func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, "visibility")
}

// toggle flips the debug flag or the visibility of the node named by the
// node query parameter, the root when absent.
func (s *Server) toggle(w http.ResponseWriter, r *http.Request, what string) {
	sess, err := s.sessions.acquire(chi.URLParam(r, "sid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer sess.mu.Unlock()

	n, err := sess.layout.Node(r.URL.Query().Get("node"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if what == "debug" {
		n.ToggleDebug()
	} else {
		n.ToggleVisibility()
	}

	st := nodeState{ID: n.ID(), Label: n.Label(), Box: n.Box().String(), Debug: n.Debug(), Visible: n.Visible()}
	s.logger.Debug("toggled "+what, "session", sess.id, "node", st.Label, "debug", st.Debug, "visible", st.Visible)
	writeJSON(w, http.StatusOK, st)
}

// handleRender renders a posted scene without creating a session. Results
// go through the runner's artifact cache.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	if sc, err := strconv.ParseFloat(r.URL.Query().Get("scale"), 64); err == nil {
		opts.Scale = sc
	}

	res, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	w.Write(res.Artifacts[format])
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
