// Package api provides the HTTP server for the stock comparison
// service.
//
// It exposes endpoints for ticker search, sector peers, the metric
// catalog, comparison image generation, and serving of the generated
// files.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phuslu/log"

	"github.com/fbruhn/aktienduell/internal/catalog"
	"github.com/fbruhn/aktienduell/internal/config"
	"github.com/fbruhn/aktienduell/internal/metric"
	"github.com/fbruhn/aktienduell/internal/render"
	"github.com/fbruhn/aktienduell/internal/table"
)

// maxSearchResults caps the ticker search response.
const maxSearchResults = 12

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	repo     *table.Repository
	reg      *catalog.Registry
	selector *metric.Selector
	comp     *render.Compositor
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	fonts, err := render.LoadFonts(cfg.Assets.FontRegular, cfg.Assets.FontBold)
	if err != nil {
		return nil, fmt.Errorf("font setup failed: %w", err)
	}

	reg := catalog.Default()
	res := metric.NewResolver(reg)
	fmtr := metric.NewFormatter(reg, res, metric.German)

	srv := &Server{
		cfg:      cfg,
		repo:     table.NewRepository(cfg.Data.TablePath),
		reg:      reg,
		selector: metric.NewSelector(reg, res),
		comp: render.NewCompositor(
			fonts,
			render.NewAssets(cfg.Assets.Dir),
			fmtr,
			render.NewScorer(reg, res),
			cfg.Render.OutputDir,
			time.Now,
		),
	}

	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-done
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/healthz", s.handleHealth)

	// Ticker search
	r.Get("/search", s.handleSearch)

	// Sector peers
	r.Get("/api/peers", s.handlePeers)

	// Metric catalog
	r.Get("/metrics", s.handleMetrics)

	// Comparison rendering
	r.Post("/generate_compare", s.handleGenerateCompare)

	// Generated files
	r.Get("/static/generated/*", s.handleGeneratedFile)

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PeersResponse is the body of GET /api/peers.
type PeersResponse struct {
	Sector   string        `json:"sector"`
	Peers    []table.Match `json:"peers"`
	Defaults []string      `json:"defaults"`
}

// MetricInfo is one selectable metric in GET /metrics.
type MetricInfo struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// CompareResponse is the body of POST /generate_compare.
type CompareResponse struct {
	SymbolA  string   `json:"symbol_a"`
	SymbolB  string   `json:"symbol_b"`
	Metrics  []string `json:"metrics"`
	File     string   `json:"file"`
	Location string   `json:"location"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap, err := s.repo.Snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("table unavailable: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":      "ok",
			"entities":    snap.Len(),
			"table_as_of": snap.ModTime().UTC().Format(time.RFC3339),
		},
	})
}

// handleSearch returns up to 20 entities matching the q parameter by
// symbol or name substring.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	snap, err := s.repo.Snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("table unavailable: %v", err))
		return
	}

	matches := snap.Search(r.URL.Query().Get("q"), maxSearchResults)
	if matches == nil {
		matches = []table.Match{}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: matches})
}

// handlePeers returns the sector of the requested symbol, every other
// entity in the same sector, and the sector's default metric list.
func (s *Server) handlePeers(w http.ResponseWriter, r *http.Request) {
	snap, err := s.repo.Snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("table unavailable: %v", err))
		return
	}

	symbol := r.URL.Query().Get("symbol")
	resp := PeersResponse{Peers: []table.Match{}, Defaults: []string{}}
	if sector, peers := snap.Peers(symbol); sector != "" {
		resp.Sector = sector
		resp.Peers = peers
		resp.Defaults = capMetrics(s.reg.SectorDefaults(sector))
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

// handleMetrics lists every selectable metric column of the current
// table, catalog-known keys first in declaration order.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap, err := s.repo.Snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("table unavailable: %v", err))
		return
	}

	available := make(map[string]bool)
	for _, col := range snap.Columns() {
		if s.reg.IsMetricColumn(col) {
			available[col] = true
		}
	}

	var ordered []string
	seen := make(map[string]bool)
	for _, key := range s.reg.Keys() {
		if available[key] && !seen[key] {
			ordered = append(ordered, key)
			seen[key] = true
		}
	}
	for _, col := range snap.Columns() {
		if available[col] && !seen[col] {
			ordered = append(ordered, col)
			seen[col] = true
		}
	}

	infos := make([]MetricInfo, 0, len(ordered))
	for _, key := range ordered {
		infos = append(infos, MetricInfo{
			Key:         key,
			Label:       s.reg.Label(key),
			Description: s.reg.Description(key),
		})
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: infos})
}

// handleGenerateCompare renders a comparison image for two tickers.
// When the tickers belong to different sectors, the second one is
// replaced with the first same-sector peer of the first ticker.
func (s *Server) handleGenerateCompare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	tickerA := strings.ToUpper(strings.TrimSpace(r.PostFormValue("ticker_a")))
	tickerB := strings.ToUpper(strings.TrimSpace(r.PostFormValue("ticker_b")))
	if tickerA == "" || tickerB == "" {
		writeError(w, http.StatusBadRequest, "ticker_a and ticker_b are required")
		return
	}
	requested := capMetrics(r.PostForm["metrics"])

	snap, err := s.repo.Snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("table unavailable: %v", err))
		return
	}

	a, ok := snap.Lookup(tickerA)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown ticker: %s", tickerA))
		return
	}
	b, ok := snap.Lookup(tickerB)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown ticker: %s", tickerB))
		return
	}

	// Cross-sector pairs are corrected server-side: keep A, swap B for
	// a peer from A's sector when one exists.
	if a.Sector() != "" && b.Sector() != "" && a.Sector() != b.Sector() {
		if _, peers := snap.Peers(a.Symbol()); len(peers) > 0 {
			if alt, ok := snap.Lookup(peers[0].Symbol); ok {
				b = alt
			}
		}
	}

	keys := s.selector.Select(a, b, requested, a.Sector())
	file, err := s.comp.Render(a, b, keys)
	if err != nil {
		log.Error().Err(err).
			Str("ticker_a", a.Symbol()).
			Str("ticker_b", b.Symbol()).
			Msg("comparison render failed")
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: CompareResponse{
			SymbolA:  a.Symbol(),
			SymbolB:  b.Symbol(),
			Metrics:  keys,
			File:     file,
			Location: "/static/generated/" + file,
		},
	})
}

// handleGeneratedFile serves one generated image. The output directory
// is flat, so the path is reduced to its base name.
func (s *Server) handleGeneratedFile(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "*"))
	if name == "." || name == "/" {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	path := filepath.Join(s.cfg.Render.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	http.ServeFile(w, r, path)
}

// ============================================================
// Helpers
// ============================================================

// capMetrics limits a metric list to the render maximum.
func capMetrics(keys []string) []string {
	if len(keys) > metric.MaxMetrics {
		return keys[:metric.MaxMetrics]
	}
	return keys
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
