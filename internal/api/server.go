// Package api exposes the parse pipeline and session store over HTTP/JSON.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/niems-digital/emslog/internal/ingest"
	"github.com/niems-digital/emslog/internal/metrics"
	"github.com/niems-digital/emslog/internal/models"
	"github.com/niems-digital/emslog/internal/pipeline"
	"github.com/niems-digital/emslog/internal/registry"
	"github.com/niems-digital/emslog/internal/session"
)

// Server is an HTTP API server over the ingest pipeline and session store.
type Server struct {
	ingestor  *ingest.Ingestor
	store     *session.Store
	registry  *registry.Registry
	logger    *slog.Logger
	authToken string // empty = no auth required
}

// NewServer creates a new Server with the given dependencies.
func NewServer(ing *ingest.Ingestor, st *session.Store, reg *registry.Registry, logger *slog.Logger, authToken string) *Server {
	return &Server{
		ingestor:  ing,
		store:     st,
		registry:  reg,
		logger:    logger,
		authToken: authToken,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check — no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("POST /v1/parse", s.auth(s.handleParse))
	mux.HandleFunc("GET /v1/activities", s.auth(s.handleListActivities))
	mux.HandleFunc("PUT /v1/activities/{id}", s.auth(s.handleEditActivity))
	mux.HandleFunc("GET /v1/projects", s.auth(s.handleListProjects))
	mux.HandleFunc("GET /v1/stats", s.auth(s.handleStats))

	// Operation counters (see internal/metrics).
	mux.HandleFunc("GET /debug/vars", s.auth(expvar.Handler().ServeHTTP))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseRequest is the body accepted by POST /v1/parse.
type parseRequest struct {
	Text string `json:"text"`
}

// parseResponse is returned by POST /v1/parse.
type parseResponse struct {
	Activities []models.Activity `json:"activities"`
	Count      int               `json:"count"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	records, err := s.ingestor.Parse(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, ingest.ErrParseInFlight) {
			s.writeError(w, http.StatusConflict, "a parse cycle is already in flight")
			return
		}
		s.logger.Error("parse cycle failed", "error", err)
		s.writeError(w, http.StatusBadGateway, "extraction failed")
		return
	}

	s.writeJSON(w, http.StatusOK, parseResponse{Activities: records, Count: len(records)})
}

func (s *Server) handleListActivities(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleEditActivity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var record models.Activity
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The path is authoritative for the record identity.
	record.ID = id
	if record.Participants == nil {
		record.Participants = []string{}
	}
	// An edited project code invalidates the old join; recompute it.
	record = pipeline.Enrich(record, s.registry)

	if !s.store.UpsertByID(record) {
		s.writeError(w, http.StatusNotFound, "activity not found")
		return
	}
	metrics.Inc(metrics.EditsApplied)

	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleListProjects(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.registry.All())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Stats())
}

// --- helpers ---

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
