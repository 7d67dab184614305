// Package server exposes the marking engine as a JSON REST API.
//
// Endpoints:
//
//	POST /api/mark      body: {"text":"..."}
//	GET  /api/lookup?word=<word>
//	GET  /api/health
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/okovalenko/nagolos/internal/logging"
	"github.com/okovalenko/nagolos/internal/model"
	"github.com/okovalenko/nagolos/internal/pipeline"
	"github.com/okovalenko/nagolos/internal/tokenize"
)

// Server serves the marking API over HTTP
type Server struct {
	pipeline *pipeline.Pipeline
	config   model.ServeConfig
}

// New creates a server around a ready pipeline
func New(p *pipeline.Pipeline, cfg model.ServeConfig) *Server {
	return &Server{pipeline: p, config: cfg}
}

// ---- JSON response types ------------------------------------------------

type markRequest struct {
	Text string `json:"text"`
}

type markResponse struct {
	Marked   string                `json:"marked"`
	Stats    model.SegmentStats    `json:"stats"`
	Defaults []model.DefaultedWord `json:"defaults,omitempty"`
}

type variantJSON struct {
	Stressed string  `json:"stressed"`
	Tag      string  `json:"tag,omitempty"`
	Weight   float64 `json:"weight"`
}

type lookupResponse struct {
	Word     string        `json:"word"`
	Key      string        `json:"key"`
	Variants []variantJSON `json:"variants"`
}

type healthResponse struct {
	Status         string `json:"status"`
	LexiconEntries int    `json:"lexicon_entries"`
	TableVersion   int    `json:"table_version"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encode_response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func (s *Server) handleMark(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body markRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return
	}

	marked, report, err := s.pipeline.ProcessText(r.Context(), body.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, markResponse{
		Marked:   marked,
		Stats:    report.Stats,
		Defaults: report.Defaults,
	})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
		return
	}

	key := tokenize.Key(word)
	variants := s.pipeline.Engine().Store().Lookup(key)
	if variants == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("word %q not in lexicon", word))
		return
	}

	out := make([]variantJSON, 0, len(variants))
	for _, v := range variants {
		out = append(out, variantJSON{
			Stressed: v.Stressed,
			Tag:      string(v.Tag),
			Weight:   v.Weight,
		})
	}
	writeJSON(w, http.StatusOK, lookupResponse{Word: word, Key: key, Variants: out})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		LexiconEntries: s.pipeline.Engine().Store().Len(),
		TableVersion:   s.pipeline.Engine().Table().Version,
	})
}

// statusWriter records the status code for request logging
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// withLogging logs each request after it completes
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logging.HTTPRequest(r.Method, r.URL.Path, r.RemoteAddr, sw.status, time.Since(start))
	})
}

// Handler assembles the route table with logging and CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mark", s.handleMark)
	mux.HandleFunc("/api/lookup", s.handleLookup)
	mux.HandleFunc("/api/health", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(withLogging(mux))
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
