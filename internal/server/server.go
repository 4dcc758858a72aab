// Package server exposes the projection engine as a JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecofinanzas/savings-engine/internal/cache"
	"github.com/ecofinanzas/savings-engine/pkg/constants"
	"github.com/ecofinanzas/savings-engine/pkg/loan"
	"github.com/ecofinanzas/savings-engine/pkg/projection"
	"github.com/ecofinanzas/savings-engine/pkg/summary"
)

type handler struct {
	logger       *zap.Logger
	calculator   *projection.Calculator
	store        cache.Cache
	maxBodyBytes int64
	version      string
}

// NewHandler constructs the HTTP handler that serves the projection API.
// A nil cache disables result caching.
func NewHandler(logger *zap.Logger, calculator *projection.Calculator, store cache.Cache, maxBodyBytes int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodyBytes <= 0 {
		maxBodyBytes = constants.DefaultMaxBodyBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:       logger,
		calculator:   calculator,
		store:        store,
		maxBodyBytes: maxBodyBytes,
		version:      trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/version", h.handleVersion)
		r.Post("/projections", h.handleProjections)
		r.Post("/summary", h.handleSummary)
	})

	return r
}

func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("request served",
			zap.String("op", "server.requestLogger"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleProjections(w http.ResponseWriter, r *http.Request) {
	var req projectionsRequest
	if !h.decode(w, r, &req) {
		return
	}

	if len(req.ExtraPayments) == 0 {
		writeError(w, http.StatusBadRequest, "extraPayments must contain at least one candidate")
		return
	}

	if h.serveCached(w, r, "projections", req) {
		return
	}

	results, err := h.calculator.ProjectAll(req.Loan.snapshot(), req.ExtraPayments, req.Labels)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	resp := projectionsResponse{
		AnalysisID:  uuid.NewString(),
		Projections: make([]projectionPayload, 0, len(results)),
	}
	for _, result := range results {
		resp.Projections = append(resp.Projections, toProjectionPayload(result))
	}

	if req.PeriodsPaid > 0 && req.PeriodsContracted > 0 {
		creditSummary, err := summary.Summarize(req.Loan.snapshot(), req.PeriodsPaid, req.PeriodsContracted)
		if err != nil {
			h.writeEngineError(w, err)
			return
		}
		payload := toSummaryPayload(creditSummary)
		resp.Summary = &payload
	}

	h.writeAndCache(w, r, "projections", req, resp)
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.PeriodsPaid < 0 || req.PeriodsContracted <= 0 {
		writeError(w, http.StatusBadRequest, "periodsPaid must be >= 0 and periodsContracted > 0")
		return
	}

	if h.serveCached(w, r, "summary", req) {
		return
	}

	creditSummary, err := summary.Summarize(req.Loan.snapshot(), req.PeriodsPaid, req.PeriodsContracted)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	resp := summaryResponse{
		AnalysisID: uuid.NewString(),
		Summary:    toSummaryPayload(creditSummary),
	}
	h.writeAndCache(w, r, "summary", req, resp)
}

// decode reads and unmarshals the request body, reporting failures to
// the client. It returns false when the handler should bail out.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// serveCached writes a previously computed response for this exact
// request, if one exists. Cache failures are never surfaced; the
// request is simply recomputed.
func (h *handler) serveCached(w http.ResponseWriter, r *http.Request, prefix string, req any) bool {
	if h.store == nil {
		return false
	}
	key, err := cache.Key(prefix, req)
	if err != nil {
		return false
	}
	body, ok := h.store.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
	return true
}

func (h *handler) writeAndCache(w http.ResponseWriter, r *http.Request, prefix string, req any, resp any) {
	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("failed to marshal response",
			zap.String("op", "server.writeAndCache"),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to serialize response")
		return
	}

	if h.store != nil {
		if key, err := cache.Key(prefix, req); err == nil {
			if err := h.store.Set(r.Context(), key, string(body)); err != nil {
				h.logger.Warn("failed to cache response",
					zap.String("op", "server.writeAndCache"),
					zap.Error(err),
				)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *handler) writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, loan.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("calculation failed",
		zap.String("op", "server.writeEngineError"),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "calculation failed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
