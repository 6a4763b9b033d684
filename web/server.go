// ABOUTME: HTTP viewer server exposing the current lattice as DOT, SVG, and JSON
// ABOUTME: state listings behind a chi router, with hot-swappable graph snapshots.
package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/2389-research/latviz/lattice"
	"github.com/2389-research/latviz/render"
	"github.com/2389-research/latviz/settings"
)

// snapshot is one immutable (graph, nonwords) pair being served. Swapped
// whole so requests never observe a half-updated lattice.
type snapshot struct {
	source   string
	graph    *lattice.Graph
	nonwords *lattice.NonwordSet
}

// Server serves a lattice over HTTP for viewing. The displayed lattice can be
// replaced at runtime (the watcher does this on file changes).
type Server struct {
	addr   string
	cfg    settings.Settings
	router chi.Router
	cache  *render.Cache

	mu   sync.RWMutex
	snap *snapshot
}

// Config holds the viewer server configuration.
type Config struct {
	Addr     string // listen address, default "127.0.0.1:8321"
	Settings settings.Settings
}

// NewServer creates a viewer server with no lattice loaded yet.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8321"
	}

	s := &Server{
		addr:  cfg.Addr,
		cfg:   cfg.Settings,
		cache: render.NewCache(render.RenderDOTSource, 5*time.Minute),
	}
	s.router = s.buildRouter()
	return s
}

// SetLattice swaps the lattice being served.
func (s *Server) SetLattice(source string, g *lattice.Graph, nonwords *lattice.NonwordSet) {
	s.mu.Lock()
	s.snap = &snapshot{source: source, graph: g, nonwords: nonwords}
	s.mu.Unlock()
}

// Lattice returns the current source path, graph, and non-word set. The graph
// is nil until SetLattice is first called.
func (s *Server) Lattice() (string, *lattice.Graph, *lattice.NonwordSet) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return "", nil, nil
	}
	return s.snap.source, s.snap.graph, s.snap.nonwords
}

// Router returns the HTTP handler, exposed for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe blocks serving HTTP until the listener fails.
func (s *Server) ListenAndServe() error {
	log.Printf("latviz viewer listening on http://%s", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph", s.handleSummary)
	r.Get("/graph.dot", s.handleDOT)
	r.Get("/graph.svg", s.handleSVG)
	r.Get("/states", s.handleStates)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// stateRow is one entry in the /states listing.
type stateRow struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	In   int    `json:"in"`
	Out  int    `json:"out"`
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	_, g, nonwords := s.Lattice()
	if g == nil {
		http.Error(w, "no lattice loaded", http.StatusNotFound)
		return
	}

	rows := make([]stateRow, 0, g.VertexCount())
	for _, id := range g.Vertices() {
		stateType, err := lattice.Classify(id, g, nonwords)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		rows = append(rows, stateRow{
			ID:   id,
			Type: stateType.String(),
			In:   len(g.InEdges(id)),
			Out:  len(g.OutEdges(id)),
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	source, g, nonwords := s.Lattice()
	if g == nil {
		http.Error(w, "no lattice loaded", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"source":   source,
		"vertices": g.VertexCount(),
		"edges":    g.EdgeCount(),
		"nonwords": nonwords.Len(),
	})
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	dotText, ok := s.currentDOT(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(dotText))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	dotText, ok := s.currentDOT(w)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	svg, err := s.cache.RenderDOTSource(ctx, dotText, "svg")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// currentDOT serializes the current snapshot, writing the HTTP error itself
// when no lattice is loaded or the lattice is malformed.
func (s *Server) currentDOT(w http.ResponseWriter) (string, bool) {
	_, g, nonwords := s.Lattice()
	if g == nil {
		http.Error(w, "no lattice loaded", http.StatusNotFound)
		return "", false
	}

	dotText, err := render.ToDOT(g, nonwords, s.cfg.Render)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return "", false
	}
	return dotText, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
