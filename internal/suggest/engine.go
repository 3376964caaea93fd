package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ablage-ai/internal/classify"
	"ablage-ai/internal/contextutil"
)

// Engine turns a document preview into exactly three ranked suggestions
// (fewer only when the folder universe is smaller). It never returns an
// error: every model failure degrades through the fallback chain.
type Engine struct {
	completer     Completer
	classifier    *classify.Classifier
	proposer      *FolderProposer
	minConfidence float64
}

// NewEngine creates a suggestion engine. minConfidence is the quality-gate
// threshold: when fewer than two validated model suggestions reach it, the
// match is treated as poor and new folders are proposed instead.
func NewEngine(completer Completer, classifier *classify.Classifier, proposer *FolderProposer, minConfidence float64) *Engine {
	return &Engine{
		completer:     completer,
		classifier:    classifier,
		proposer:      proposer,
		minConfidence: minConfidence,
	}
}

// Suggest produces the ranked candidates for previewText given the current
// folder set and learning hints.
func (e *Engine) Suggest(ctx context.Context, previewText string, available, hints []string) []Suggestion {
	logger := contextutil.LoggerFromContext(ctx)

	if len(available) == 0 {
		logger.WarnContext(ctx, "no target folders configured")
		return noTargetSuggestions()
	}

	prompt := buildChoicePrompt(previewText, available, hints)

	raw, err := e.completer.Generate(ctx, prompt, choiceTemperature, choiceTopP)
	if err != nil {
		logger.WarnContext(ctx, "completion call failed, using keyword fallback", "error", err)
		return e.fallback(ctx, previewText, available)
	}

	valid, err := parseChoices(raw, available)
	if err != nil {
		logger.WarnContext(ctx, "model response unusable, using keyword fallback", "error", err)
		return e.fallback(ctx, previewText, available)
	}
	if len(valid) == 0 {
		logger.WarnContext(ctx, "model suggested no known folders, using keyword fallback")
		return e.fallback(ctx, previewText, available)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Confidence > valid[j].Confidence
	})

	// Quality gate: prefer admitting "nothing fits" over forcing weak
	// matches onto existing folders.
	if e.confidentCount(valid) < 2 {
		logger.InfoContext(ctx, "model suggestions below confidence gate, proposing new folders",
			"threshold", e.minConfidence)
		return e.proposer.Propose(ctx, previewText, available)
	}

	result := pad(valid, available)
	if len(result) > resultCount {
		result = result[:resultCount]
	}
	logger.InfoContext(ctx, "model suggestions accepted", "count", len(result), "top_folder", result[0].Folder)
	return result
}

// fallback runs the deterministic keyword classifier and maps its scores to
// heuristic confidences.
func (e *Engine) fallback(ctx context.Context, previewText string, available []string) []Suggestion {
	logger := contextutil.LoggerFromContext(ctx)

	matches := e.classifier.Classify(previewText, available)

	var suggestions []Suggestion
	for _, match := range matches {
		if len(suggestions) == 2 {
			break
		}
		confidence := float64(match.Score) * fallbackConfidenceStep
		if confidence > fallbackConfidenceCap {
			confidence = fallbackConfidenceCap
		}
		suggestions = append(suggestions, Suggestion{
			Folder:     match.Folder,
			Reason:     "keywords found in document text",
			Confidence: confidence,
		})
	}

	logger.InfoContext(ctx, "keyword fallback produced suggestions", "scored", len(suggestions))
	return pad(suggestions, available)
}

// confidentCount reports how many suggestions reach the gate threshold.
func (e *Engine) confidentCount(suggestions []Suggestion) int {
	count := 0
	for _, s := range suggestions {
		if s.Confidence >= e.minConfidence {
			count++
		}
	}
	return count
}

// pad extends a suggestion set to resultCount entries using the available
// folder universe: the miscellaneous folder first (if present and unused),
// then remaining folders in set order, each at padConfidence. Duplicate
// folders are never introduced.
func pad(suggestions []Suggestion, available []string) []Suggestion {
	used := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		if !s.IsNew {
			used[s.Folder] = true
		}
	}

	appendFolder := func(folder, reason string) {
		suggestions = append(suggestions, Suggestion{
			Folder:     folder,
			Reason:     reason,
			Confidence: padConfidence,
		})
		used[folder] = true
	}

	if len(suggestions) < resultCount && !used[miscFolder] {
		for _, folder := range available {
			if folder == miscFolder {
				appendFolder(miscFolder, "default fallback")
				break
			}
		}
	}

	for _, folder := range available {
		if len(suggestions) >= resultCount {
			break
		}
		if !used[folder] {
			appendFolder(folder, "automatic assignment")
		}
	}

	return suggestions
}

// noTargetSuggestions is the short-circuit when no destinations exist. The
// placeholders are flagged as new folders: with an empty folder universe
// there is no member they could name.
func noTargetSuggestions() []Suggestion {
	out := make([]Suggestion, resultCount)
	for i := range out {
		out[i] = Suggestion{
			Folder:     miscFolder,
			FolderPath: miscFolder,
			Reason:     "no target folders configured",
			Confidence: padConfidence,
			IsNew:      true,
		}
	}
	return out
}

// buildChoicePrompt assembles the folder-choice instruction.
func buildChoicePrompt(previewText string, available, hints []string) string {
	var b strings.Builder

	b.WriteString("You are a filing assistant for a German document archive.\n\n")
	b.WriteString("Document content:\n")
	b.WriteString(previewText)
	b.WriteString("\n\nAvailable target folders:\n")
	for _, folder := range available {
		fmt.Fprintf(&b, "- %s\n", folder)
	}

	if len(hints) > 0 {
		b.WriteString("\nLearning hints:\n")
		for _, hint := range hints {
			b.WriteString(hint)
			b.WriteByte('\n')
		}
	}

	b.WriteString("\nTask:\n")
	b.WriteString("Analyze the document content and suggest the 3 best matching folders.\n")
	b.WriteString("Take German terms, invoice numbers, IBANs etc. into account.\n\n")
	b.WriteString("Respond with a JSON array only:\n")
	b.WriteString("[\n")
	b.WriteString("  {\"folder\": \"FolderName\", \"reason\": \"short reason\", \"confidence\": 0.85},\n")
	b.WriteString("  {\"folder\": \"FolderName\", \"reason\": \"short reason\", \"confidence\": 0.60},\n")
	b.WriteString("  {\"folder\": \"FolderName\", \"reason\": \"short reason\", \"confidence\": 0.35}\n")
	b.WriteString("]\n\n")
	b.WriteString("Sort by confidence (0.0-1.0) descending.")

	return b.String()
}
