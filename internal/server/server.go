// Package server serves a rendered guide over HTTP for local preview.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jorge-barreto/guidebook/internal/guide"
	"github.com/jorge-barreto/guidebook/internal/render"
	"github.com/jorge-barreto/guidebook/internal/search"
)

// Server holds the guide being served. Swap replaces it while requests
// are in flight.
type Server struct {
	log *log.Logger

	mu    sync.RWMutex
	guide *guide.Guide
	page  []byte
}

// New renders g and returns a server for it.
func New(g *guide.Guide, logger *log.Logger) (*Server, error) {
	s := &Server{log: logger}
	if err := s.Swap(g); err != nil {
		return nil, err
	}
	return s, nil
}

// Swap renders g and makes it the served guide. On error the previous
// guide stays in place.
func (s *Server) Swap(g *guide.Guide) error {
	page, err := render.Bytes(render.HTML{}, g.Document())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.guide, s.page = g, page
	s.mu.Unlock()
	return nil
}

func (s *Server) current() (*guide.Guide, []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guide, s.page
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleGuide)
	r.Get("/topics/{anchor}", s.handleTopic)
	r.Get("/outline.json", s.handleOutline)
	r.Get("/search", s.handleSearch)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("serving guide", "addr", "http://"+ln.Addr().String())

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
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "dur", time.Since(start))
	})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	_, page := s.current()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	g, _ := s.current()
	i, ok := g.Find(chi.URLParam(r, "anchor"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := render.TopicHTML(&buf, g.Title, g.Section(i)); err != nil {
		s.log.Error("rendering topic", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	g, _ := s.current()
	writeJSON(w, http.StatusOK, map[string]any{
		"title":   g.Title,
		"entries": g.Outline,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing q parameter"})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	g, _ := s.current()
	hits := search.Search(g.Topics, g.Outline, q, limit)
	if hits == nil {
		hits = []search.Hit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "results": hits})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
