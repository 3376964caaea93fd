package suggest

import (
	"context"
	"fmt"
	"strings"

	"ablage-ai/internal/contextutil"
)

const defaultProposalConfidence = 0.7

// FolderProposer generates novel folder name proposals when no existing
// folder is a good match. Like the engine, it never fails: a model failure
// degrades to deterministic content-sniffing defaults.
type FolderProposer struct {
	completer Completer
}

// NewFolderProposer creates a FolderProposer.
func NewFolderProposer(completer Completer) *FolderProposer {
	return &FolderProposer{completer: completer}
}

// Propose asks the model for up to three new folder name ideas for
// previewText, listing the existing folders so it avoids them.
func (p *FolderProposer) Propose(ctx context.Context, previewText string, existing []string) []Suggestion {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := buildProposalPrompt(previewText, existing)

	raw, err := p.completer.Generate(ctx, prompt, proposalTemperature, proposalTopP)
	if err != nil {
		logger.WarnContext(ctx, "folder proposal call failed, using defaults", "error", err)
		return defaultProposals(previewText)
	}

	proposals, err := parseProposals(raw)
	if err != nil || len(proposals) == 0 {
		logger.WarnContext(ctx, "folder proposal response unusable, using defaults", "error", err)
		return defaultProposals(previewText)
	}

	logger.InfoContext(ctx, "model proposed new folders", "count", len(proposals))
	return proposals
}

// parseProposals validates decoded items into new-folder suggestions. The
// optional subfolder field encodes one level of nesting; null or absent
// subfolders normalize to a flat path.
func parseProposals(raw string) ([]Suggestion, error) {
	items, err := decodeItems(raw)
	if err != nil {
		return nil, err
	}

	var proposals []Suggestion
	for _, item := range items {
		if len(proposals) == resultCount {
			break
		}
		folder, ok := item["folder"].(string)
		if !ok || folder == "" {
			continue
		}

		path := folder
		label := folder
		if sub, ok := item["subfolder"].(string); ok && sub != "" {
			path = folder + "/" + sub
			label = folder + " / " + sub
		}

		confidence := defaultProposalConfidence
		if raw, ok := item["confidence"]; ok {
			confidence = coerceConfidence(raw)
		}

		reason := "suggested new folder"
		if raw, ok := item["reason"]; ok {
			reason = truncateReason(raw)
		}

		proposals = append(proposals, Suggestion{
			Folder:     label,
			FolderPath: path,
			Reason:     reason,
			Confidence: confidence,
			IsNew:      true,
		})
	}
	return proposals, nil
}

// defaultProposals sniffs the preview for payment and agreement vocabulary
// and tops the result up with two static catch-all categories, so the set
// has up to three entries even with zero signal.
func defaultProposals(previewText string) []Suggestion {
	textLower := strings.ToLower(previewText)

	var proposals []Suggestion

	if containsAny(textLower, "rechnung", "invoice", "betrag", "eur", "€") {
		proposals = append(proposals, Suggestion{
			Folder:     "Neue Rechnungen",
			FolderPath: "Neue Rechnungen",
			Reason:     "invoice-like content detected",
			Confidence: 0.8,
			IsNew:      true,
		})
	}

	if containsAny(textLower, "vertrag", "contract", "vereinbarung") {
		proposals = append(proposals, Suggestion{
			Folder:     "Verträge / Neue Kategorie",
			FolderPath: "Verträge/Neue Kategorie",
			Reason:     "contract-like content detected",
			Confidence: 0.7,
			IsNew:      true,
		})
	}

	catchAll := []Suggestion{
		{
			Folder:     "Dokumente / Neue Kategorie",
			FolderPath: "Dokumente/Neue Kategorie",
			Reason:     "general document filing",
			Confidence: 0.5,
			IsNew:      true,
		},
		{
			Folder:     "Temporär / Zu Sortieren",
			FolderPath: "Temporär/Zu Sortieren",
			Reason:     "temporary holding for later sorting",
			Confidence: 0.4,
			IsNew:      true,
		},
	}
	for _, s := range catchAll {
		if len(proposals) == resultCount {
			break
		}
		proposals = append(proposals, s)
	}

	return proposals
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// buildProposalPrompt assembles the new-folder-name instruction. This is a
// materially different ask from folder choice: name ideas, not a pick.
func buildProposalPrompt(previewText string, existing []string) string {
	var b strings.Builder

	b.WriteString("You are a filing assistant. The document content fits none of the existing folders well.\n\n")
	b.WriteString("Document content:\n")
	b.WriteString(previewText)
	b.WriteString("\n\nExisting folders:\n")
	for _, folder := range existing {
		fmt.Fprintf(&b, "- %s\n", folder)
	}

	b.WriteString("\nTask:\n")
	b.WriteString("Suggest 3 new, sensible folder names that would suit this document.\n")
	b.WriteString("Consider possible subfolders as well.\n\n")
	b.WriteString("Respond with a JSON array only:\n")
	b.WriteString("[\n")
	b.WriteString("  {\"folder\": \"New folder name\", \"subfolder\": \"optional subfolder\", \"reason\": \"why this folder fits\", \"confidence\": 0.8},\n")
	b.WriteString("  {\"folder\": \"New folder name\", \"subfolder\": null, \"reason\": \"reason\", \"confidence\": 0.7},\n")
	b.WriteString("  {\"folder\": \"New folder name\", \"subfolder\": \"subfolder\", \"reason\": \"reason\", \"confidence\": 0.6}\n")
	b.WriteString("]")

	return b.String()
}
