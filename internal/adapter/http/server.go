// Package http exposes the query API plus health, readiness, and metrics
// endpoints. This layer is the presentation collaborator: it validates query
// parameters (range ordering, minimum start date, positive radius) before
// they reach the query engine, and maps the error taxonomy to human-readable
// responses without leaking internal faults.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-analysis-service/internal/config"
	"github.com/couchcryptid/quake-analysis-service/internal/domain"
	"github.com/couchcryptid/quake-analysis-service/internal/observability"
	"github.com/couchcryptid/quake-analysis-service/internal/query"
	"github.com/couchcryptid/quake-analysis-service/internal/store"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the query API and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	snapshots  *store.Store
	metrics    *observability.Metrics
	minStart   domain.EventTime
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /v1 query routes.
func NewServer(cfg *config.Config, snapshots *store.Store, ready ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		snapshots: snapshots,
		metrics:   metrics,
		minStart:  cfg.QueryMinStart,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/query", s.handleQuery)
	mux.HandleFunc("POST /v1/hotspot", s.handleHotspot)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// queryRequest carries the optional filter groups. The date range and the
// geographic circle must each be supplied whole or not at all.
type queryRequest struct {
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	RadiusKm *float64 `json:"radius_km,omitempty"`
	Sort     bool     `json:"sort,omitempty"`
}

type queryResponse struct {
	Count  int                   `json:"count"`
	Events []domain.SeismicEvent `json:"events"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.reject(w, "query", "request body is not valid JSON")
		return
	}

	filters, errMsg := s.buildFilters(req)
	if errMsg != "" {
		s.reject(w, "query", errMsg)
		return
	}

	events, err := query.Run(s.snapshots.Current().Events, filters, req.Sort)
	if err != nil {
		s.fail(w, "query", err)
		return
	}

	s.metrics.Queries.WithLabelValues("query", "ok").Inc()
	s.metrics.QueryDuration.WithLabelValues("query").Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, queryResponse{Count: len(events), Events: events})
}

// buildFilters validates the request's filter groups and converts them into
// engine filters. Returns a non-empty message on validation failure.
func (s *Server) buildFilters(req queryRequest) (query.Filters, string) {
	var filters query.Filters

	if (req.Start == "") != (req.End == "") {
		return filters, "start and end must be provided together"
	}
	if req.Start != "" {
		startTime, err := domain.ParseEventTime(req.Start)
		if err != nil {
			return filters, "invalid start: " + err.Error()
		}
		endTime, err := domain.ParseEventTime(req.End)
		if err != nil {
			return filters, "invalid end: " + err.Error()
		}
		if startTime.Compare(endTime) > 0 {
			return filters, "start must not be after end"
		}
		if startTime.Compare(s.minStart) < 0 {
			return filters, "start must not be before " + s.minStart.String()
		}
		filters.DateRange = &query.DateRange{Start: startTime, End: endTime}
	}

	radiusProvided := req.Lat != nil || req.Lon != nil || req.RadiusKm != nil
	if radiusProvided {
		if req.Lat == nil || req.Lon == nil || req.RadiusKm == nil {
			return filters, "lat, lon, and radius_km must be provided together"
		}
		if *req.RadiusKm <= 0 {
			return filters, "radius_km must be positive"
		}
		center, err := domain.NewGeoPoint(*req.Lat, *req.Lon, "")
		if err != nil {
			return filters, "invalid center: " + err.Error()
		}
		filters.Radius = &query.RadiusFilter{Center: center, RadiusKm: *req.RadiusKm}
	}

	return filters, ""
}

type hotspotRequest struct {
	RadiusKm float64 `json:"radius_km"`
}

type hotspotResponse struct {
	Center           domain.SeismicEvent   `json:"center"`
	NeighborhoodSize int                   `json:"neighborhood_size"`
	Neighborhood     []domain.SeismicEvent `json:"neighborhood"`
}

func (s *Server) handleHotspot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req hotspotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.reject(w, "hotspot", "request body is not valid JSON")
		return
	}
	if req.RadiusKm <= 0 {
		s.reject(w, "hotspot", "radius_km must be positive")
		return
	}

	center, neighborhood, err := query.Hotspot(s.snapshots.Current().Events, req.RadiusKm)
	if err != nil {
		s.fail(w, "hotspot", err)
		return
	}

	s.metrics.Queries.WithLabelValues("hotspot", "ok").Inc()
	s.metrics.QueryDuration.WithLabelValues("hotspot").Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, hotspotResponse{
		Center:           center,
		NeighborhoodSize: len(neighborhood),
		Neighborhood:     neighborhood,
	})
}

// reject reports a client-side validation failure.
func (s *Server) reject(w http.ResponseWriter, kind, msg string) {
	s.metrics.Queries.WithLabelValues(kind, "invalid").Inc()
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// fail maps engine errors to responses. QueryErrors are client-visible
// degenerate-input failures; anything else is logged and reported
// generically so internal faults never leak.
func (s *Server) fail(w http.ResponseWriter, kind string, err error) {
	var qerr *domain.QueryError
	if errors.As(err, &qerr) {
		s.metrics.Queries.WithLabelValues(kind, "invalid").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": qerr.Error()})
		return
	}

	s.logger.Error("query failed", "kind", kind, "error", err)
	s.metrics.Queries.WithLabelValues(kind, "error").Inc()
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
