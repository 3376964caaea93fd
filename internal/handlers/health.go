package handlers

import (
	"context"
	"net/http"
	"time"

	"ablage-ai/internal/contextutil"
)

// Pinger is the reachability probe of the completion service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	llmClient          Pinger
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(llmClient Pinger) *HealthHandler {
	return &HealthHandler{
		llmClient:          llmClient,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "degraded"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// An unreachable completion service only degrades the system: the keyword
// fallback keeps suggestions working, so the response status stays 200.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"
	if err := h.llmClient.Ping(checkCtx); err != nil {
		logger.WarnContext(ctx, "completion service unreachable", "error", err)
		checks["ollama"] = "error"
		status = "degraded"
	} else {
		checks["ollama"] = "ok"
	}

	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
