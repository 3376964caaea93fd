package handlers

import (
	"net/http"

	"ablage-ai/internal/contextutil"
)

// StatusHandler handles HTTP requests for the organizer status snapshot.
type StatusHandler struct {
	organizer Organizer
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(organizer Organizer) *StatusHandler {
	return &StatusHandler{organizer: organizer}
}

// ServeHTTP handles HTTP requests for the organizer status snapshot.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, h.organizer.Status(ctx))
}
