// Package folders owns the set of valid filing destinations: the directories
// under the ablage root. The directory tree is authoritative; the in-memory
// set is a cache refreshed on demand after folder creation.
package folders

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Manager caches the top-level folder names under the ablage root.
type Manager struct {
	root string

	mu     sync.RWMutex
	cached []string
}

// NewManager creates the ablage root if needed and performs the initial scan.
func NewManager(root string) (*Manager, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ablage root %s: %w", root, err)
	}
	m := &Manager{root: root}
	if err := m.Refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

// Root returns the ablage root path.
func (m *Manager) Root() string {
	return m.root
}

// List returns the current folder names, sorted. The slice is a copy.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.cached))
	copy(out, m.cached)
	return out
}

// Contains reports whether name is a current member of the folder set.
// Folder names are case-sensitive.
func (m *Manager) Contains(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, folder := range m.cached {
		if folder == name {
			return true
		}
	}
	return false
}

// Refresh rescans the ablage root. Hidden directories are skipped.
func (m *Manager) Refresh() error {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return fmt.Errorf("failed to scan ablage root: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	m.mu.Lock()
	m.cached = names
	m.mu.Unlock()
	return nil
}

// Create makes a new destination folder, including one level of nesting
// encoded as "parent/child", and refreshes the set. It returns the absolute
// path of the created directory.
func (m *Manager) Create(folderPath string) (string, error) {
	cleaned, err := m.resolve(folderPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cleaned, 0755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", folderPath, err)
	}
	if err := m.Refresh(); err != nil {
		return "", err
	}
	return cleaned, nil
}

// Path returns the absolute destination path for a folder (or nested
// "parent/child" path) without creating it.
func (m *Manager) Path(folderPath string) (string, error) {
	return m.resolve(folderPath)
}

// resolve joins folderPath onto the root and rejects anything that would
// escape it.
func (m *Manager) resolve(folderPath string) (string, error) {
	if folderPath == "" {
		return "", fmt.Errorf("empty folder path")
	}
	joined := filepath.Join(m.root, filepath.FromSlash(folderPath))
	cleaned := filepath.Clean(joined)
	if cleaned != m.root && !strings.HasPrefix(cleaned, m.root+string(filepath.Separator)) {
		return "", fmt.Errorf("folder path %q escapes the ablage root", folderPath)
	}
	if cleaned == m.root {
		return "", fmt.Errorf("folder path %q resolves to the ablage root itself", folderPath)
	}
	return cleaned, nil
}
