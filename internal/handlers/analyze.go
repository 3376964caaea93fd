package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ablage-ai/internal/contextutil"
	"ablage-ai/internal/lifecycle"
)

// AnalyzeHandler handles HTTP requests for re-analyzing a pending file.
type AnalyzeHandler struct {
	organizer Organizer
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(organizer Organizer) *AnalyzeHandler {
	return &AnalyzeHandler{organizer: organizer}
}

// AnalyzeRequest represents the HTTP request payload for re-analysis.
type AnalyzeRequest struct {
	Filename string `json:"filename"`
}

// ServeHTTP handles HTTP requests for re-analyzing a pending file.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Filename == "" {
		writeError(w, r, http.StatusBadRequest, "filename is required")
		return
	}

	entry, err := h.organizer.Reanalyze(ctx, req.Filename)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "File not found")
			return
		}
		logger.ErrorContext(ctx, "re-analysis failed", "filename", req.Filename, "error", err)
		writeError(w, r, http.StatusInternalServerError, "Re-analysis failed")
		return
	}

	writeJSON(w, r, http.StatusOK, entry)
}
