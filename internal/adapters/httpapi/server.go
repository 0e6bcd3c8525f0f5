package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/url-risk/internal/application"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server exposes URL analysis over HTTP. It holds no per-request state.
type Server struct {
	Service *application.URLAnalysisService
	Logger  *slog.Logger
}

// NewServer creates a new HTTP adapter around the analysis service
func NewServer(service *application.URLAnalysisService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Service: service, Logger: logger}
}

// AnalyzeRequest is the body of POST /api/v1/analyze
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// BatchRequest is the body of POST /api/v1/analyze/batch
type BatchRequest struct {
	URLs []string `json:"urls"`
}

// RuleInfo describes one scoring rule without its predicate
type RuleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Description string `json:"description"`
}

// Routes returns the API handler; unknown paths get 404 and wrong methods 405
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/rules", s.handleRules)
	mux.HandleFunc("POST /api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/v1/analyze/batch", s.handleAnalyzeBatch)

	return withRequestLog(s.Logger, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().UTC(),
	})
}

// GET /api/v1/rules (evaluation order)
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rules := s.Service.Rules()
	items := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		items = append(items, RuleInfo{
			ID:          rule.ID,
			Name:        rule.Name,
			Weight:      rule.Weight,
			Description: rule.Description,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	report, err := s.Service.Analyze(r.Context(), req.URL)
	if err != nil {
		s.serviceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.URLs) == 0 {
		s.err(w, http.StatusBadRequest, "urls required")
		return
	}

	reports, err := s.Service.AnalyzeBatch(r.Context(), req.URLs)
	if err != nil {
		s.serviceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"batch_id": uuid.New(),
		"items":    reports,
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.err(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}

func (s *Server) serviceErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrEmptyURL):
		s.err(w, http.StatusBadRequest, "url required")
	case errors.Is(err, application.ErrTooManyURLs):
		s.err(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		s.Logger.Error("analysis failed", "err", err)
		s.err(w, http.StatusInternalServerError, "analysis failed")
	}
}

func (s *Server) err(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
