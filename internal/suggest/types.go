// Package suggest produces ranked folder candidates for a document preview.
// The model is asked first; on any failure the deterministic keyword
// classifier takes over, and when nothing fits well the engine proposes new
// folders instead of forcing a weak match.
package suggest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks ablage-ai/internal/suggest Completer

import "context"

// Suggestion is one ranked folder candidate. Non-new suggestions always name
// a current member of the target folder set; new-folder proposals carry
// IsNew and a FolderPath that may encode one level of nesting as
// "parent/child".
type Suggestion struct {
	Folder     string  `json:"folder"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	IsNew      bool    `json:"is_new,omitempty"`
	FolderPath string  `json:"folder_path,omitempty"`
}

// Completer is the completion capability from the engine's perspective. It
// is treated as fallible and slow; callers bound it with a context deadline
// or a client-side timeout.
type Completer interface {
	Generate(ctx context.Context, prompt string, temperature, topP float64) (string, error)
}

const (
	// resultCount is the fixed size of a suggestion set (fewer only when
	// the folder universe itself is smaller).
	resultCount = 3

	// reasonMaxLen bounds the free-text reason of every suggestion.
	reasonMaxLen = 100

	// padConfidence marks entries appended only to fill the result set.
	padConfidence = 0.1

	// miscFolder is preferred when padding, if it exists.
	miscFolder = "Sonstiges"

	// Keyword fallback confidence mapping: min(cap, score*step). The cap
	// deliberately stays below 1.0 to signal a heuristic judgment.
	fallbackConfidenceCap  = 0.7
	fallbackConfidenceStep = 0.2

	// Sampling intents. Folder choice wants near-deterministic output;
	// name invention gets slightly more freedom.
	choiceTemperature   = 0.3
	choiceTopP          = 0.9
	proposalTemperature = 0.4
	proposalTopP        = 0.9
)
