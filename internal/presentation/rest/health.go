package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const readinessTimeout = 2 * time.Second

// ReadinessCheck checks one dependency the service needs to serve traffic.
type ReadinessCheck struct {
	Check func(ctx context.Context) error
	Name  string
}

// HealthHandler provides HTTP health check endpoints for the service.
type HealthHandler struct {
	logger    *slog.Logger
	startTime time.Time
	checks    []ReadinessCheck
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(logger *slog.Logger, checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		checks:    checks,
	}
}

// HealthResponse is the JSON response for liveness checks.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Checks map[string]string `json:"checks"`
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Health handles liveness check requests.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "OK"})
}

// Readyz runs every readiness check and reports 503 if any of them fails.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status, code := "ready", http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				slog.String("check", c.Name),
				slog.String("error", err.Error()),
			)
			checks[c.Name] = err.Error()
			status, code = "not ready", http.StatusServiceUnavailable
			continue
		}
		checks[c.Name] = "ok"
	}

	writeJSON(w, code, ReadinessResponse{
		Status: status,
		Checks: checks,
		Uptime: time.Since(h.startTime).Truncate(time.Second).String(),
	})
}
