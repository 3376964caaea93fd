package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/mock/gomock"

	"ablage-ai/internal/classify"
	"ablage-ai/internal/suggest/mocks"
)

const gateThreshold = 0.6

func newEngine(t *testing.T) (*Engine, *mocks.MockCompleter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	engine := NewEngine(completer, classify.NewClassifier(), NewFolderProposer(completer), gateThreshold)
	return engine, completer
}

func assertInvariants(t *testing.T, suggestions []Suggestion, available []string) {
	t.Helper()
	availableSet := make(map[string]bool)
	for _, f := range available {
		availableSet[f] = true
	}
	for i, s := range suggestions {
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Errorf("suggestion %d confidence %v out of [0,1]", i, s.Confidence)
		}
		if !s.IsNew && !availableSet[s.Folder] {
			t.Errorf("suggestion %d names unknown folder %q", i, s.Folder)
		}
		if i > 0 && suggestions[i].Confidence > suggestions[i-1].Confidence {
			t.Errorf("suggestions not sorted by descending confidence: %v", suggestions)
		}
	}
}

func TestSuggestAcceptsValidModelResponse(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`[
			{"folder": "Bank", "reason": "IBAN found", "confidence": 0.7},
			{"folder": "Rechnungen", "reason": "invoice number", "confidence": 0.9},
			{"folder": "Sonstiges", "reason": "catch-all", "confidence": 0.2}
		]`, nil)

	got := engine.Suggest(context.Background(), "Rechnung mit IBAN", available, nil)

	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}
	if got[0].Folder != "Rechnungen" || got[1].Folder != "Bank" {
		t.Errorf("unexpected order: %v", got)
	}
	assertInvariants(t, got, available)
}

func TestSuggestDeduplicatesRepeatedFolders(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`[
			{"folder": "Bank", "reason": "weaker duplicate", "confidence": 0.5},
			{"folder": "Bank", "reason": "IBAN found", "confidence": 0.9},
			{"folder": "Rechnungen", "reason": "invoice number", "confidence": 0.7}
		]`, nil)

	got := engine.Suggest(context.Background(), "Rechnung mit IBAN", available, nil)

	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}
	seen := make(map[string]int)
	for _, s := range got {
		if !s.IsNew {
			seen[s.Folder]++
		}
	}
	for folder, count := range seen {
		if count > 1 {
			t.Errorf("folder %q appears %d times", folder, count)
		}
	}
	if got[0].Folder != "Bank" || got[0].Confidence != 0.9 {
		t.Errorf("duplicate should keep the highest-confidence item, got %+v", got[0])
	}
	if got[1].Folder != "Rechnungen" {
		t.Errorf("unexpected order: %v", got)
	}
	assertInvariants(t, got, available)
}

func TestSuggestTruncatesMultibyteReasonsSafely(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	// 161 bytes; the leading ASCII byte puts byte 100 mid-rune.
	longReason := "x" + strings.Repeat("ü", 80)
	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`[
			{"folder": "Bank", "reason": "`+longReason+`", "confidence": 0.9},
			{"folder": "Rechnungen", "reason": "r", "confidence": 0.8}
		]`, nil)

	got := engine.Suggest(context.Background(), "text", available, nil)

	if len(got[0].Reason) > 100 {
		t.Errorf("reason length = %d, want at most 100 bytes", len(got[0].Reason))
	}
	if !utf8.ValidString(got[0].Reason) {
		t.Errorf("truncated reason is not valid UTF-8: %q", got[0].Reason)
	}
}

func TestSuggestStripsCodeFences(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("```json\n[{\"folder\": \"Bank\", \"reason\": \"r\", \"confidence\": 0.8},\n{\"folder\": \"Rechnungen\", \"reason\": \"r\", \"confidence\": 0.7}]\n```", nil)

	got := engine.Suggest(context.Background(), "text", available, nil)

	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3 after padding", len(got))
	}
	if got[0].Folder != "Bank" {
		t.Errorf("top folder = %q, want Bank", got[0].Folder)
	}
	assertInvariants(t, got, available)
}

func TestSuggestFallsBackOnGarbage(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("Sure! I would file this under Rechnungen because...", nil)

	got := engine.Suggest(context.Background(), "Rechnung Betrag 120 EUR MwSt", available, nil)

	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}
	if got[0].Folder != "Rechnungen" {
		t.Errorf("fallback top folder = %q, want Rechnungen", got[0].Folder)
	}
	assertInvariants(t, got, available)
}

func TestSuggestFallsBackWhenModelUnreachable(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("connection refused"))

	got := engine.Suggest(context.Background(), "Rechnung Betrag 120 EUR MwSt", available, nil)

	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}
	// Four keyword hits capped at 0.7.
	if got[0].Folder != "Rechnungen" || got[0].Confidence != 0.7 {
		t.Errorf("top suggestion = %+v, want Rechnungen at 0.7", got[0])
	}
	// No other folder scores, so Sonstiges pads at 0.1.
	if got[1].Folder != "Sonstiges" || got[1].Confidence != padConfidence {
		t.Errorf("second suggestion = %+v, want Sonstiges pad", got[1])
	}
	assertInvariants(t, got, available)
}

func TestSuggestDropsUnknownFoldersThenFallsBack(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	// Every model item references hallucinated folders, so nothing
	// validates and the keyword fallback runs.
	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`[{"folder": "Steuern 2024", "reason": "r", "confidence": 0.95},
			{"folder": "Privat", "reason": "r", "confidence": 0.9}]`, nil)

	got := engine.Suggest(context.Background(), "iban konto bank", available, nil)

	for _, s := range got {
		if s.Folder == "Steuern 2024" || s.Folder == "Privat" {
			t.Errorf("hallucinated folder survived validation: %v", got)
		}
	}
	if got[0].Folder != "Bank" {
		t.Errorf("fallback top folder = %q, want Bank", got[0].Folder)
	}
	assertInvariants(t, got, available)
}

func TestSuggestQualityGateProposesNewFolders(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	gomock.InOrder(
		// Folder choice: valid but uniformly weak.
		completer.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(`[{"folder": "Bank", "reason": "r", "confidence": 0.3},
				{"folder": "Rechnungen", "reason": "r", "confidence": 0.2},
				{"folder": "Sonstiges", "reason": "r", "confidence": 0.1}]`, nil),
		// New-folder proposal call.
		completer.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(`[{"folder": "Reisen", "subfolder": "Flüge", "reason": "travel booking", "confidence": 0.8}]`, nil),
	)

	got := engine.Suggest(context.Background(), "Flugbuchung nach Lissabon", available, nil)

	if len(got) == 0 {
		t.Fatal("expected proposals")
	}
	if !got[0].IsNew {
		t.Errorf("expected new-folder proposal, got %+v", got[0])
	}
	if got[0].FolderPath != "Reisen/Flüge" {
		t.Errorf("FolderPath = %q, want Reisen/Flüge", got[0].FolderPath)
	}
}

func TestSuggestCoercionAndTruncation(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}

	longReason := strings.Repeat("x", 250)
	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`[{"folder": "Bank", "reason": "`+longReason+`", "confidence": 3.5},
			{"folder": "Rechnungen", "reason": "ok", "confidence": "0.8"}]`, nil)

	got := engine.Suggest(context.Background(), "text", available, nil)

	if got[0].Confidence != 1.0 {
		t.Errorf("confidence should clamp to 1.0, got %v", got[0].Confidence)
	}
	if len(got[0].Reason) != 100 {
		t.Errorf("reason length = %d, want truncated to 100", len(got[0].Reason))
	}
	if got[1].Folder != "Rechnungen" || got[1].Confidence != 0.8 {
		t.Errorf("string confidence should coerce: %+v", got[1])
	}
}

func TestSuggestNoTargetFolders(t *testing.T) {
	engine, _ := newEngine(t)

	got := engine.Suggest(context.Background(), "anything", nil, nil)

	if len(got) != 3 {
		t.Fatalf("got %d placeholders, want 3", len(got))
	}
	for _, s := range got {
		if !strings.Contains(s.Reason, "no target folders") {
			t.Errorf("placeholder reason = %q", s.Reason)
		}
		// An empty folder universe has no members a non-new suggestion
		// could name.
		if !s.IsNew {
			t.Errorf("placeholder %+v not flagged as new folder", s)
		}
	}
}

func TestSuggestSmallFolderUniverse(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Bank", "Rechnungen"}

	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`[{"folder": "Bank", "reason": "r", "confidence": 0.9},
			{"folder": "Rechnungen", "reason": "r", "confidence": 0.8}]`, nil)

	got := engine.Suggest(context.Background(), "text", available, nil)

	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2 when only 2 folders exist", len(got))
	}
	assertInvariants(t, got, available)
}

func TestSuggestPromptCarriesFoldersAndHints(t *testing.T) {
	engine, completer := newEngine(t)
	available := []string{"Rechnungen", "Bank", "Sonstiges"}
	hints := []string{`Documents mentioning "telekom" were previously filed under "Rechnungen".`}

	var gotPrompt string
	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string, _, _ float64) (string, error) {
			gotPrompt = prompt
			return `[{"folder": "Rechnungen", "reason": "r", "confidence": 0.9},
				{"folder": "Bank", "reason": "r", "confidence": 0.7}]`, nil
		})

	engine.Suggest(context.Background(), "Telekom Rechnung", available, hints)

	for _, want := range []string{"- Rechnungen", "- Bank", "telekom", "Telekom Rechnung"} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
