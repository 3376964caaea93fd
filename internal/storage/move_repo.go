package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_move_store.go -package=mocks ablage-ai/internal/storage MoveStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MoveRecord is one confirmed move, the audit trail behind the learning
// store's rolling window.
type MoveRecord struct {
	ID         string
	Filename   string
	Folder     string
	SourcePath string
	DestPath   string
	MovedAt    time.Time
}

// MoveStore defines the interface for move-history storage operations.
type MoveStore interface {
	// Insert appends a move record; the ID is generated when empty.
	Insert(ctx context.Context, record *MoveRecord) error
	// ListRecent returns the most recent moves, newest first.
	ListRecent(ctx context.Context, limit int) ([]MoveRecord, error)
}

// MoveRepo provides methods for move-history operations.
// It implements the MoveStore interface.
type MoveRepo struct {
	db *sql.DB
}

// NewMoveRepo creates a new MoveRepo.
func NewMoveRepo(db *sql.DB) *MoveRepo {
	return &MoveRepo{db: db}
}

// Insert appends a move record.
func (r *MoveRepo) Insert(ctx context.Context, record *MoveRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.MovedAt.IsZero() {
		record.MovedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO moves (id, filename, folder, source_path, dest_path, moved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.Filename, record.Folder, record.SourcePath, record.DestPath,
		record.MovedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert move record: %w", err)
	}
	return nil
}

// ListRecent returns the most recent moves, newest first.
func (r *MoveRepo) ListRecent(ctx context.Context, limit int) ([]MoveRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, folder, source_path, dest_path, moved_at
		 FROM moves ORDER BY moved_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query move records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []MoveRecord
	for rows.Next() {
		var record MoveRecord
		var movedAtStr string
		if err := rows.Scan(&record.ID, &record.Filename, &record.Folder,
			&record.SourcePath, &record.DestPath, &movedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan move record: %w", err)
		}
		record.MovedAt, err = time.Parse(time.RFC3339, movedAtStr)
		if err != nil {
			// SQLite may return its own DATETIME format for old rows.
			record.MovedAt, err = time.Parse("2006-01-02 15:04:05", movedAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse moved_at timestamp: %w", err)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate move records: %w", err)
	}

	return records, nil
}
