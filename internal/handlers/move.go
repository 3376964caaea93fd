package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ablage-ai/internal/contextutil"
	"ablage-ai/internal/lifecycle"
)

// MoveHandler handles HTTP requests confirming a move.
type MoveHandler struct {
	organizer Organizer
}

// NewMoveHandler creates a new MoveHandler.
func NewMoveHandler(organizer Organizer) *MoveHandler {
	return &MoveHandler{organizer: organizer}
}

// MoveRequest represents the HTTP request payload for confirming a move.
type MoveRequest struct {
	Filename   string `json:"filename"`
	Folder     string `json:"folder"`
	IsNew      bool   `json:"is_new,omitempty"`
	FolderPath string `json:"folder_path,omitempty"`
}

// MoveResponse represents the HTTP response payload for a confirmed move.
type MoveResponse struct {
	Filename string `json:"filename"`
	Folder   string `json:"folder"`
	DestPath string `json:"dest_path"`
}

// ServeHTTP handles HTTP requests confirming a move.
func (h *MoveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Filename == "" {
		writeError(w, r, http.StatusBadRequest, "filename is required")
		return
	}
	if req.Folder == "" && req.FolderPath == "" {
		writeError(w, r, http.StatusBadRequest, "folder is required")
		return
	}

	result, err := h.organizer.ConfirmMove(ctx, lifecycle.MoveRequest{
		Filename:   req.Filename,
		Folder:     req.Folder,
		IsNew:      req.IsNew,
		FolderPath: req.FolderPath,
	})
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			writeError(w, r, http.StatusNotFound, "File not found")
		case errors.Is(err, lifecycle.ErrInvalidTarget):
			writeError(w, r, http.StatusBadRequest, "Invalid target folder")
		default:
			logger.ErrorContext(ctx, "move failed", "filename", req.Filename, "error", err)
			writeError(w, r, http.StatusInternalServerError, "Move failed")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, MoveResponse{
		Filename: result.Filename,
		Folder:   result.Folder,
		DestPath: result.DestPath,
	})
}
