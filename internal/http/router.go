// Package http wires the handlers into a chi router with the shared
// middleware stack.
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ablage-ai/internal/handlers"
	"ablage-ai/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Organizer handlers.Organizer
	History   storage.MoveStore
	LLMClient handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) (http.Handler, error) {
	indexHandler, err := handlers.NewIndexHandler()
	if err != nil {
		return nil, fmt.Errorf("loading index template: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/pending", handlers.NewPendingHandler(deps.Organizer))
		r.Method(http.MethodPost, "/move", handlers.NewMoveHandler(deps.Organizer))
		r.Method(http.MethodPost, "/analyze", handlers.NewAnalyzeHandler(deps.Organizer))
		r.Method(http.MethodGet, "/status", handlers.NewStatusHandler(deps.Organizer))
		r.Method(http.MethodGet, "/history", handlers.NewHistoryHandler(deps.History))
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.LLMClient))
	})

	// Review page at root.
	r.Method(http.MethodGet, "/", indexHandler)

	return r, nil
}
