// Package api provides the HTTP REST API for the Soccer Hub backend.
//
// It exposes the aggregated news feed, the upcoming fixtures window, and
// match prediction endpoints consumed by the mobile client.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/soccerhub/soccerhub/internal/config"
	"github.com/soccerhub/soccerhub/internal/feeds"
	"github.com/soccerhub/soccerhub/internal/llm"
	"github.com/soccerhub/soccerhub/internal/predict"
)

// Version is reported by the health endpoint; the main package overwrites it
// with the build-time version.
var Version = "dev"

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	registry feeds.Registry
	fetcher  *feeds.Fetcher
	orch     *predict.Orchestrator
	now      func() time.Time // injectable clock for the fixtures window
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	provider, err := llm.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM setup failed: %w", err)
	}

	opts := &llm.ChatOptions{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	srv := &Server{
		cfg:      cfg,
		registry: feeds.NewRegistry(cfg.Sources.News, cfg.Sources.Fixtures),
		fetcher:  feeds.NewFetcher(time.Duration(cfg.Fetch.TimeoutSec) * time.Second),
		orch:     predict.NewOrchestrator(provider, opts),
		now:      time.Now,
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
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

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
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/feeds", s.handleFeeds)
		r.Get("/fixtures", s.handleFixtures)
		r.Get("/predictions", s.handlePredictions)
		r.Post("/predict", s.handlePredict)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// ErrorResponse is the error object returned on 4xx/5xx.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PredictRequest is the body for POST /api/predict.
type PredictRequest struct {
	Title string `json:"title"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": Version,
		"sources": len(s.registry.News),
	})
}

// handleFeeds aggregates every configured news source into one list, newest
// first. Individual source failures are absorbed inside the fetcher; only a
// failure of the aggregation step itself would surface as a 500, and the
// Recoverer middleware covers that.
func (s *Server) handleFeeds(w http.ResponseWriter, r *http.Request) {
	results := s.fetcher.FetchAll(r.Context(), s.registry.News)
	items := feeds.Aggregate(results)

	log.Printf("api: aggregated %d articles from %d sources", len(items), len(results))
	writeJSON(w, http.StatusOK, items)
}

// handleFixtures returns the fixtures inside the next-24-hours window. The
// empty list covers both "nothing scheduled" and "fixtures feed unavailable";
// the caller cannot tell the two apart, matching the upstream contract the
// mobile client was built against.
func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	result := s.fetcher.FetchSource(r.Context(), s.registry.Fixtures)
	if result.Failed() {
		log.Printf("api: fixtures feed unavailable, returning empty list")
	}

	fixtures := feeds.SelectUpcoming(result.Items, s.now())
	writeJSON(w, http.StatusOK, fixtures)
}

// handlePredict generates a prediction for a single match title.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "match title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	result, err := s.orch.Predict(ctx, req.Title)
	if err != nil {
		// Upstream and format failures alike surface as a generic 500;
		// details were already logged by the orchestrator.
		log.Printf("api: prediction failed for %q: %v", req.Title, err)
		writeError(w, http.StatusInternalServerError, "failed to generate prediction")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handlePredictions fetches the upcoming fixtures and generates one
// prediction per fixture in a single round trip, keyed by match title. The
// fan-out is fail-fast, so one failed prediction fails the whole response.
func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	result := s.fetcher.FetchSource(ctx, s.registry.Fixtures)
	fixtures := feeds.SelectUpcoming(result.Items, s.now())

	predictions, err := s.orch.PredictAll(ctx, fixtures)
	if err != nil {
		log.Printf("api: batch prediction failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to generate predictions")
		return
	}

	writeJSON(w, http.StatusOK, predictions)
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
