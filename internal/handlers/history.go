package handlers

import (
	"net/http"
	"strconv"
	"time"

	"ablage-ai/internal/contextutil"
	"ablage-ai/internal/storage"
)

const maxHistoryLimit = 200

// HistoryHandler handles HTTP requests for the move history.
type HistoryHandler struct {
	store storage.MoveStore
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(store storage.MoveStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// HistoryEntry represents one confirmed move in the history response.
type HistoryEntry struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Folder   string `json:"folder"`
	DestPath string `json:"dest_path"`
	MovedAt  string `json:"moved_at"`
}

// HistoryResponse represents the move history response.
type HistoryResponse struct {
	Moves []HistoryEntry `json:"moves"`
	Count int            `json:"count"`
}

// ServeHTTP handles HTTP requests for the move history. The optional limit
// query parameter caps the number of entries, newest first.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := h.store.ListRecent(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "listing move history failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "Failed to load history")
		return
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, HistoryEntry{
			ID:       rec.ID,
			Filename: rec.Filename,
			Folder:   rec.Folder,
			DestPath: rec.DestPath,
			MovedAt:  rec.MovedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, r, http.StatusOK, HistoryResponse{Moves: entries, Count: len(entries)})
}
