// Package transport exposes the navigator facade over a small JSON REST
// API for UIs and scripts.
package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/policynav/policynav/internal/domain/alert"
	"github.com/policynav/policynav/internal/domain/document"
	"github.com/policynav/policynav/internal/domain/policy"
	"github.com/policynav/policynav/internal/metrics"
	"github.com/policynav/policynav/internal/navigator"
)

const maxUploadBytes = 10 << 20

// Server wires HTTP handlers around the navigator facade.
type Server struct {
	nav     *navigator.Navigator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRouter creates the REST router. gatherer serves /metrics; pass the
// registry the metrics were registered on.
func NewRouter(nav *navigator.Navigator, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{nav: nav, logger: logger, metrics: m}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(srv.observeMiddleware)

	r.Post("/query", srv.handleQuery)
	r.Post("/status", srv.handleStatus)
	r.Post("/compliance", srv.handleCompliance)
	r.Post("/upload", srv.handleUpload)
	r.Post("/index-url", srv.handleIndexURL)
	r.Post("/search-indexed", srv.handleSearchIndexed)
	r.Post("/send-alert", srv.handleSendAlert)
	r.Get("/stats", srv.handleStats)
	r.Get("/health", srv.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

type queryRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.nav.Query(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, policy.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "Query is required")
			return
		}
		s.logger.Error("query failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

type statusRequest struct {
	PolicyID string `json:"policy_id"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.nav.CheckPolicyStatus(r.Context(), req.PolicyID)
	if err != nil {
		if errors.Is(err, policy.ErrEmptyPolicyID) {
			writeError(w, http.StatusBadRequest, "Policy ID is required")
			return
		}
		s.logger.Error("status check failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type complianceRequest struct {
	BusinessType string `json:"business_type"`
	Size         string `json:"size"`
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	var req complianceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BusinessType == "" {
		req.BusinessType = "general"
	}
	if req.Size == "" {
		req.Size = "small_business"
	}

	writeJSON(w, http.StatusOK, s.nav.AnalyzeCompliance(req.BusinessType, req.Size))
}

// handleUpload accepts a multipart file, stages it on disk, and indexes it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	// Stage in a fresh directory so the stored filename stays the user's
	// original basename.
	tmpDir, err := os.MkdirTemp("", "policynav_upload_")
	if err != nil {
		s.logger.Error("upload staging failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not stage upload")
		return
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, filepath.Base(header.Filename))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		s.logger.Error("upload staging failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not stage upload")
		return
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		s.logger.Error("upload staging failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not stage upload")
		return
	}
	tmp.Close()

	result := s.nav.UploadDocument(tmpPath, r.FormValue("doc_type"))
	if result.Status == document.StatusError {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}
	if s.metrics != nil {
		s.metrics.DocumentsIndexedTotal.Inc()
	}
	writeJSON(w, http.StatusOK, result)
}

type indexURLRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleIndexURL(w http.ResponseWriter, r *http.Request) {
	var req indexURLRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	result := s.nav.IndexURL(r.Context(), req.URL)
	if result.Status == document.StatusIndexed && s.metrics != nil {
		s.metrics.DocumentsIndexedTotal.Inc()
	}
	writeJSON(w, http.StatusOK, result)
}

type searchIndexedRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (s *Server) handleSearchIndexed(w http.ResponseWriter, r *http.Request) {
	var req searchIndexedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	if s.metrics != nil {
		s.metrics.SearchQueriesTotal.Inc()
	}
	results := s.nav.SearchIndexed(req.Query, req.Limit)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleSendAlert(w http.ResponseWriter, r *http.Request) {
	var info alert.PolicyInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, s.nav.SendPolicyAlert(r.Context(), info))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.nav.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Policy Navigator API",
	})
}

func decodeJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
