package handlers

import (
	"net/http"

	"ablage-ai/internal/contextutil"
	"ablage-ai/internal/lifecycle"
)

// PendingHandler handles HTTP requests for the pending file list.
type PendingHandler struct {
	organizer Organizer
}

// NewPendingHandler creates a new PendingHandler.
func NewPendingHandler(organizer Organizer) *PendingHandler {
	return &PendingHandler{organizer: organizer}
}

// PendingResponse represents the pending file list response.
type PendingResponse struct {
	Files []lifecycle.PendingFile `json:"files"`
	Count int                     `json:"count"`
}

// ServeHTTP handles HTTP requests for the pending file list.
func (h *PendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	files := h.organizer.ListPending(ctx)
	if files == nil {
		files = []lifecycle.PendingFile{}
	}
	writeJSON(w, r, http.StatusOK, PendingResponse{Files: files, Count: len(files)})
}
