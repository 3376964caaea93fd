package suggest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeItems parses a model response as a JSON array of objects. It tries a
// strict decode first and, on failure, a single normalization pass stripping
// fenced code-block markers before decoding again. Anything still invalid is
// an error; the caller routes to the deterministic fallback instead of
// attempting further heuristic repair.
func decodeItems(raw string) ([]map[string]any, error) {
	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items, nil
	}

	normalized := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(normalized), &items); err != nil {
		return nil, fmt.Errorf("model response is not a JSON array: %w", err)
	}
	return items, nil
}

// stripCodeFences unwraps the first fenced block of a response like
// "```json\n[...]\n```". Responses without fences are returned trimmed.
func stripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return strings.TrimSpace(s)
	}
	parts := strings.SplitN(s, "```", 3)
	if len(parts) < 2 {
		return strings.TrimSpace(s)
	}
	inner := strings.TrimSpace(parts[1])
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

// parseChoices validates decoded items into suggestions. Items missing a
// required key are dropped; items naming a folder outside available are
// silently dropped so hallucinated folder names never become actionable.
// A folder named more than once keeps only its highest-confidence item, so
// the result never carries duplicate folders.
func parseChoices(raw string, available []string) ([]Suggestion, error) {
	items, err := decodeItems(raw)
	if err != nil {
		return nil, err
	}

	availableSet := make(map[string]bool, len(available))
	for _, folder := range available {
		availableSet[folder] = true
	}

	var valid []Suggestion
	byFolder := make(map[string]int)
	for _, item := range items {
		folderVal, ok := item["folder"].(string)
		if !ok {
			continue
		}
		if _, ok := item["reason"]; !ok {
			continue
		}
		if _, ok := item["confidence"]; !ok {
			continue
		}
		if !availableSet[folderVal] {
			continue
		}
		s := Suggestion{
			Folder:     folderVal,
			Reason:     truncateReason(item["reason"]),
			Confidence: coerceConfidence(item["confidence"]),
		}
		if i, seen := byFolder[folderVal]; seen {
			if s.Confidence > valid[i].Confidence {
				valid[i] = s
			}
			continue
		}
		byFolder[folderVal] = len(valid)
		valid = append(valid, s)
	}
	return valid, nil
}

// coerceConfidence turns a loosely-typed confidence value into a float
// clamped to [0,1], defaulting to 0 when it cannot be coerced.
func coerceConfidence(v any) float64 {
	var conf float64
	switch value := v.(type) {
	case float64:
		conf = value
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		conf = parsed
	default:
		return 0
	}

	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}

// truncateReason renders a reason value as text capped at reasonMaxLen
// without splitting a rune.
func truncateReason(v any) string {
	reason := fmt.Sprintf("%v", v)
	if len(reason) <= reasonMaxLen {
		return reason
	}
	cut := reasonMaxLen
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}
