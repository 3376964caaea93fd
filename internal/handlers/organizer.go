// Package handlers contains the HTTP handlers of the organizer API. Each
// handler is a small struct with ServeHTTP, wired by the router.
package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_organizer.go -package=mocks ablage-ai/internal/handlers Organizer

import (
	"context"

	"ablage-ai/internal/lifecycle"
)

// Organizer is the lifecycle surface the handlers depend on.
type Organizer interface {
	// ListPending returns all files awaiting a decision, sorted by filename.
	ListPending(ctx context.Context) []lifecycle.PendingFile
	// ConfirmMove executes a confirmed move for a pending file.
	ConfirmMove(ctx context.Context, req lifecycle.MoveRequest) (*lifecycle.MoveResult, error)
	// Reanalyze refreshes preview and suggestions for a pending file.
	Reanalyze(ctx context.Context, filename string) (*lifecycle.PendingFile, error)
	// Status reports pending count and the current folder universe.
	Status(ctx context.Context) lifecycle.Status
}
