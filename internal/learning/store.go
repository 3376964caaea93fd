// Package learning records confirmed filing decisions and derives per-folder
// keyword vocabularies from them, used to bias future model prompts.
package learning

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// maxDecisions caps the decision log; the oldest entries are evicted
	// first. The keyword index is intentionally never trimmed: it
	// approximates cumulative vocabulary, not the current log window.
	maxDecisions = 100

	// minTokenLen filters filename noise like "der", "v2" or dates split
	// into short fragments.
	minTokenLen = 3

	maxHints = 3
)

// Decision is one confirmed filename→folder filing, immutable once appended.
type Decision struct {
	Timestamp string `json:"timestamp"`
	Filename  string `json:"filename"`
	Folder    string `json:"folder"`
}

type data struct {
	Decisions      []Decision          `json:"decisions"`
	FolderKeywords map[string][]string `json:"folder_keywords"`
}

// Store persists decisions and the derived keyword index to a single JSON
// file, written synchronously after every update.
type Store struct {
	mu     sync.Mutex
	path   string
	data   data
	logger *slog.Logger
}

// Open loads the store from path, starting fresh when the file is missing or
// unreadable. Past decisions are an optimization, never a startup blocker.
func Open(path string) *Store {
	s := &Store{
		path:   path,
		data:   data{FolderKeywords: make(map[string][]string)},
		logger: slog.Default(),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read learning data, starting fresh", "path", path, "error", err)
		}
		return s
	}

	var loaded data
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.logger.Warn("corrupt learning data, starting fresh", "path", path, "error", err)
		return s
	}
	if loaded.FolderKeywords == nil {
		loaded.FolderKeywords = make(map[string][]string)
	}
	s.data = loaded
	return s
}

// RecordDecision appends a decision, trims the log to the most recent
// entries, folds new filename tokens into the folder's keyword index and
// persists the full structure.
func (s *Store) RecordDecision(filename, folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Decisions = append(s.data.Decisions, Decision{
		Timestamp: time.Now().Format(time.RFC3339),
		Filename:  filename,
		Folder:    folder,
	})
	if len(s.data.Decisions) > maxDecisions {
		s.data.Decisions = s.data.Decisions[len(s.data.Decisions)-maxDecisions:]
	}

	existing := s.data.FolderKeywords[folder]
	for _, token := range filenameTokens(filename) {
		if !contains(existing, token) {
			existing = append(existing, token)
		}
	}
	s.data.FolderKeywords[folder] = existing

	return s.persist()
}

// HintsFor returns up to three hint sentences for keywords from past
// decisions that appear in text, to keep the prompt small.
func (s *Store) HintsFor(text string) []string {
	textLower := strings.ToLower(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	var hints []string
	for folder, keywords := range s.data.FolderKeywords {
		for _, keyword := range keywords {
			if strings.Contains(textLower, strings.ToLower(keyword)) {
				hints = append(hints, fmt.Sprintf("Documents mentioning %q were previously filed under %q.", keyword, folder))
				if len(hints) == maxHints {
					return hints
				}
			}
		}
	}
	return hints
}

// Decisions returns a copy of the current decision log, newest last.
func (s *Store) Decisions() []Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Decision, len(s.data.Decisions))
	copy(out, s.data.Decisions)
	return out
}

// Keywords returns a copy of the keyword index for one folder.
func (s *Store) Keywords(folder string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.data.FolderKeywords[folder]))
	copy(out, s.data.FolderKeywords[folder])
	return out
}

// persist writes the store to disk. Callers must hold the mutex.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal learning data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create learning data directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write learning data: %w", err)
	}
	return nil
}

// filenameTokens derives lowercase keywords from a filename: the extension is
// stripped, the rest split on underscores, and short fragments dropped.
func filenameTokens(filename string) []string {
	name := strings.ToLower(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	var tokens []string
	for _, token := range strings.Split(name, "_") {
		if len(token) > minTokenLen {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
