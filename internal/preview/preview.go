package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxPreviewLen bounds the extracted text so prompts stay small.
const maxPreviewLen = 2000

// Extractor produces bounded text previews from inbox files. It never fails
// past its boundary: unreadable or unsupported files yield a synthetic
// placeholder so downstream logic always has a non-empty string to reason
// about.
type Extractor struct {
	maxLen int
}

// NewExtractor creates an Extractor with the default preview cap.
func NewExtractor() *Extractor {
	return &Extractor{maxLen: maxPreviewLen}
}

// ExtractPreview returns a text excerpt for the file at path.
func (e *Extractor) ExtractPreview(path string) string {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return errorPlaceholder(name, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return fmt.Sprintf("Filename: %s\nType: %s", name, ext)
		}
		return e.truncate(string(content))
	case ".md":
		content, err := os.ReadFile(path)
		if err != nil {
			return errorPlaceholder(name, err)
		}
		text := extractMarkdownText(content)
		if strings.TrimSpace(text) == "" {
			return fmt.Sprintf("Filename: %s\nType: %s", name, ext)
		}
		return e.truncate(text)
	case ".doc":
		return fmt.Sprintf("Filename: %s\nNote: legacy .doc files are not supported", name)
	default:
		return fmt.Sprintf("Filename: %s\nType: %s", name, ext)
	}
}

// truncate caps s at the extractor's limit without splitting a rune.
func (e *Extractor) truncate(s string) string {
	if len(s) <= e.maxLen {
		return s
	}
	cut := e.maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func errorPlaceholder(name string, err error) string {
	return fmt.Sprintf("Filename: %s\nError reading file: %v", name, err)
}
