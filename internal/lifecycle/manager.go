// Package lifecycle tracks inbox files from discovery to a confirmed move.
// Nothing is ever moved automatically; files sit in the pending registry
// with their suggestions until a human confirms a destination.
package lifecycle

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"ablage-ai/internal/contextutil"
	"ablage-ai/internal/folders"
	"ablage-ai/internal/learning"
	"ablage-ai/internal/preview"
	"ablage-ai/internal/storage"
	"ablage-ai/internal/suggest"
)

// PendingFile is one inbox file awaiting a human decision.
type PendingFile struct {
	Filename     string               `json:"filename"`
	SourcePath   string               `json:"source_path"`
	TextPreview  string               `json:"text_preview"`
	Suggestions  []suggest.Suggestion `json:"suggestions"`
	DiscoveredAt time.Time            `json:"discovered_at"`
}

// MoveRequest is a confirmed destination for a pending file. IsNew asks for
// the folder to be created first; FolderPath may then encode one level of
// nesting as "parent/child" and falls back to Folder when empty.
type MoveRequest struct {
	Filename   string
	Folder     string
	IsNew      bool
	FolderPath string
}

// MoveResult reports where a confirmed file ended up.
type MoveResult struct {
	Filename string `json:"filename"`
	Folder   string `json:"folder"`
	DestPath string `json:"dest_path"`
}

// Status is a point-in-time snapshot of the organizer.
type Status struct {
	PendingCount  int      `json:"pending_count"`
	TargetFolders []string `json:"target_folders"`
	InboxPath     string   `json:"inbox_path"`
}

// Manager owns the pending registry and coordinates preview extraction,
// suggestion, and the confirmed move itself.
type Manager struct {
	inboxPath string
	extractor *preview.Extractor
	engine    *suggest.Engine
	folders   *folders.Manager
	learning  *learning.Store
	history   storage.MoveStore

	pollInterval  time.Duration
	stableTimeout time.Duration

	mu      sync.Mutex
	pending map[string]*PendingFile
}

// NewManager wires a lifecycle manager. history may be nil when no audit
// store is configured.
func NewManager(inboxPath string, extractor *preview.Extractor, engine *suggest.Engine, fm *folders.Manager, store *learning.Store, history storage.MoveStore) *Manager {
	return &Manager{
		inboxPath:     inboxPath,
		extractor:     extractor,
		engine:        engine,
		folders:       fm,
		learning:      store,
		history:       history,
		pollInterval:  defaultPollInterval,
		stableTimeout: defaultStableTimeout,
		pending:       make(map[string]*PendingFile),
	}
}

// ProcessFile analyzes one inbox file and registers it as pending. Hidden
// and editor temp files are ignored. Re-processing a name that is already
// pending refreshes its entry.
func (m *Manager) ProcessFile(ctx context.Context, path string) error {
	logger := contextutil.LoggerFromContext(ctx)

	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
		logger.Debug("skipping hidden or temp file", "filename", name)
		return nil
	}

	if err := WaitForStable(ctx, path, m.pollInterval, m.stableTimeout); err != nil {
		return fmt.Errorf("waiting for file to stabilize: %w", err)
	}

	entry, err := m.analyze(ctx, name, path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.pending[name] = entry
	count := len(m.pending)
	m.mu.Unlock()

	logger.Info("file pending review",
		"filename", name,
		"suggestions", len(entry.Suggestions),
		"pending_count", count,
	)
	return nil
}

// analyze extracts a preview and asks for suggestions. It runs without the
// registry lock: the model call can take many seconds and must not stall
// readers of the pending list.
func (m *Manager) analyze(ctx context.Context, name, path string) (*PendingFile, error) {
	text := m.extractor.ExtractPreview(path)
	hints := m.learning.HintsFor(text)
	suggestions := m.engine.Suggest(ctx, text, m.folders.List(), hints)

	return &PendingFile{
		Filename:     name,
		SourcePath:   path,
		TextPreview:  displayPreview(text),
		Suggestions:  suggestions,
		DiscoveredAt: time.Now().UTC(),
	}, nil
}

// displayPreviewLen bounds the preview stored for the UI; the full
// extraction still feeds the suggestion prompt.
const displayPreviewLen = 300

func displayPreview(s string) string {
	if len(s) <= displayPreviewLen {
		return s
	}
	cut := displayPreviewLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ListPending returns a snapshot of the registry, sorted by filename.
func (m *Manager) ListPending(ctx context.Context) []PendingFile {
	m.mu.Lock()
	out := make([]PendingFile, 0, len(m.pending))
	for _, p := range m.pending {
		out = append(out, *p)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

// Reanalyze re-runs preview extraction and suggestion for a pending file,
// picking up folders or learning data that changed since the first pass.
func (m *Manager) Reanalyze(ctx context.Context, filename string) (*PendingFile, error) {
	m.mu.Lock()
	existing, ok := m.pending[filename]
	var path string
	if ok {
		path = existing.SourcePath
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	entry, err := m.analyze(ctx, filename, path)
	if err != nil {
		return nil, err
	}
	entry.DiscoveredAt = existing.DiscoveredAt

	m.mu.Lock()
	// Only update if nothing moved the file while we were analyzing.
	if _, still := m.pending[filename]; still {
		m.pending[filename] = entry
	}
	m.mu.Unlock()

	snapshot := *entry
	return &snapshot, nil
}

// Status reports the pending count and the current folder universe.
func (m *Manager) Status(ctx context.Context) Status {
	m.mu.Lock()
	count := len(m.pending)
	m.mu.Unlock()

	return Status{
		PendingCount:  count,
		TargetFolders: m.folders.List(),
		InboxPath:     m.inboxPath,
	}
}

// ConfirmMove executes a human-confirmed move. On any failure the file stays
// pending so the decision can be retried. Recording the decision for
// learning and history happens after the move and never fails it; a history
// write error is only logged.
func (m *Manager) ConfirmMove(ctx context.Context, req MoveRequest) (*MoveResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	m.mu.Lock()
	entry, ok := m.pending[req.Filename]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	destDir, folderName, err := m.resolveTarget(req)
	if err != nil {
		return nil, err
	}

	destPath := destinationPath(destDir, req.Filename)
	if err := moveFile(entry.SourcePath, destPath); err != nil {
		return nil, fmt.Errorf("moving %s: %w", req.Filename, err)
	}

	m.mu.Lock()
	delete(m.pending, req.Filename)
	m.mu.Unlock()

	if err := m.learning.RecordDecision(req.Filename, folderName); err != nil {
		logger.Error("recording decision failed", "filename", req.Filename, "error", err)
	}
	if m.history != nil {
		record := &storage.MoveRecord{
			Filename:   req.Filename,
			Folder:     folderName,
			SourcePath: entry.SourcePath,
			DestPath:   destPath,
		}
		if err := m.history.Insert(ctx, record); err != nil {
			logger.Error("recording move history failed", "filename", req.Filename, "error", err)
		}
	}

	logger.Info("file moved", "filename", req.Filename, "folder", folderName, "dest", destPath)
	return &MoveResult{Filename: req.Filename, Folder: folderName, DestPath: destPath}, nil
}

// resolveTarget maps a move request to an existing directory, creating it
// first for new-folder confirmations.
func (m *Manager) resolveTarget(req MoveRequest) (dir, folderName string, err error) {
	if req.IsNew {
		spec := req.FolderPath
		if spec == "" {
			spec = req.Folder
		}
		if spec == "" {
			return "", "", ErrInvalidTarget
		}
		dir, err = m.folders.Create(spec)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}
		return dir, spec, nil
	}

	if !m.folders.Contains(req.Folder) {
		return "", "", ErrInvalidTarget
	}
	dir, err = m.folders.Path(req.Folder)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	return dir, req.Folder, nil
}

// destinationPath resolves name collisions in the target directory by
// appending a timestamp, and a counter when the same second collides too.
func destinationPath(dir, filename string) string {
	dest := filepath.Join(dir, filename)
	if !exists(dest) {
		return dest
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	stamp := time.Now().Format("20060102_150405")

	dest = filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, stamp, ext))
	for i := 1; exists(dest); i++ {
		dest = filepath.Join(dir, fmt.Sprintf("%s_%s_%d%s", base, stamp, i, ext))
	}
	return dest
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// moveFile renames when possible and falls back to copy-and-remove for
// cross-device targets, which are common with NAS mounts.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(src)
}

// Remove drops a pending entry without moving anything, used when the file
// disappears from the inbox underneath us.
func (m *Manager) Remove(filename string) {
	m.mu.Lock()
	delete(m.pending, filename)
	m.mu.Unlock()
}
