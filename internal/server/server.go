// Package server exposes the discovery and comparison operations over HTTP
// for the frontend.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/madhavthaker/pdp-comp-analysis/internal/analysis"
	"github.com/madhavthaker/pdp-comp-analysis/internal/citations"
	"github.com/madhavthaker/pdp-comp-analysis/internal/competitor"
	"github.com/madhavthaker/pdp-comp-analysis/internal/llm"
	"github.com/madhavthaker/pdp-comp-analysis/internal/operations"
)

// Ops is the slice of the operations layer the server needs.
type Ops interface {
	FindCompetitor(ctx context.Context, sourceURL string) (*competitor.Result, error)
	AnalyzeComparison(ctx context.Context, sourceURL, referenceURL string) (*analysis.AnalysisReport, error)
	AnalyzeSingle(ctx context.Context, sourceURL string) (*operations.SingleResult, error)
}

// Server provides the HTTP API over the operations layer.
type Server struct {
	port        int
	token       string
	frontendURL string
	ops         Ops
	logger      *zap.Logger
	server      *http.Server
}

func NewServer(port int, token, frontendURL string, ops Ops, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		port:        port,
		token:       token,
		frontendURL: frontendURL,
		ops:         ops,
		logger:      logger,
	}
}

// Handler builds the route table. Split from Start so tests can drive it
// through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/find-competitor", s.handleFindCompetitor)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/analyze-single", s.handleAnalyzeSingle)
	mux.Handle("/metrics", promhttp.Handler())

	return s.corsMiddleware(mux)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	s.logger.Info("API server starting", zap.Int("port", s.port))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// corsMiddleware allows the local frontend, the configured deployment URL,
// and vercel preview deployments.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		switch {
		case origin == "http://localhost:3000":
			w.Header().Set("Access-Control-Allow-Origin", origin)
		case s.frontendURL != "" && origin == s.frontendURL:
			w.Header().Set("Access-Control-Allow-Origin", origin)
		case strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, ".vercel.app"):
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) validateToken(r *http.Request) bool {
	if s.token == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+s.token
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "pdp-analyzer-api",
	})
}

func (s *Server) handleFindCompetitor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required", "find-competitor")
		return
	}

	result, err := s.ops.FindCompetitor(r.Context(), req.URL)
	if err != nil {
		s.writePipelineError(w, "find-competitor", err)
		return
	}

	if citations.IsSentinelURL(result.CompetitorURL) {
		s.writeError(w, http.StatusInternalServerError, "no competitor product page found", "find-competitor")
		return
	}

	requestsTotal.WithLabelValues("find-competitor", "success").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceURL    string `json:"source_url"`
		ReferenceURL string `json:"reference_url"`
	}
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.SourceURL == "" || req.ReferenceURL == "" {
		s.writeError(w, http.StatusBadRequest, "source_url and reference_url are required", "analyze")
		return
	}

	report, err := s.ops.AnalyzeComparison(r.Context(), req.SourceURL, req.ReferenceURL)
	if err != nil {
		s.writePipelineError(w, "analyze", err)
		return
	}

	requestsTotal.WithLabelValues("analyze", "success").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    report,
	})
}

func (s *Server) handleAnalyzeSingle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required", "analyze-single")
		return
	}

	result, err := s.ops.AnalyzeSingle(r.Context(), req.URL)
	if err != nil {
		s.writePipelineError(w, "analyze-single", err)
		return
	}

	requestsTotal.WithLabelValues("analyze-single", "success").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"competitor_discovery": result.Discovery,
		"comparison":           result.Comparison,
	})
}

func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if !s.validateToken(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err), "decode")
		return false
	}
	return true
}

// writePipelineError maps the error taxonomy onto status codes: quota
// exhaustion is a distinct, user-visible 402; rejected credentials get a
// distinct message; everything else propagates as a generic failure.
func (s *Server) writePipelineError(w http.ResponseWriter, endpoint string, err error) {
	s.logger.Error("pipeline error", zap.String("endpoint", endpoint), zap.Error(err))

	switch {
	case llm.IsQuotaError(err):
		s.writeError(w, http.StatusPaymentRequired,
			"API quota exceeded. Please check your plan and billing details.", endpoint)
	case llm.IsCredentialError(err):
		s.writeError(w, http.StatusInternalServerError,
			"Invalid API key configured on the server.", endpoint)
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error(), endpoint)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message, endpoint string) {
	requestsTotal.WithLabelValues(endpoint, "error").Inc()
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
