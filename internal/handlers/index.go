package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"ablage-ai/internal/contextutil"
)

//go:embed templates/index.html
var templateFS embed.FS

// IndexHandler serves the review page, a single HTML page that drives the
// JSON API.
type IndexHandler struct {
	tmpl *template.Template
}

// NewIndexHandler creates a new IndexHandler with the embedded template.
func NewIndexHandler() (*IndexHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &IndexHandler{tmpl: tmpl}, nil
}

// ServeHTTP serves the review page.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, nil); err != nil {
		logger.ErrorContext(ctx, "failed to render index page", "error", err)
	}
}
