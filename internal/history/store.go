package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"shelfmark/internal/renamer"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing journals must be deleted after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the journal was written by an incompatible
// version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// ErrNoBatches indicates the journal holds no batch that can be undone.
var ErrNoBatches = errors.New("no rename batches to undo")

// ErrBatchNotFound indicates the requested batch ID does not exist.
var ErrBatchNotFound = errors.New("rename batch not found")

// Batch is one applied rename batch.
type Batch struct {
	ID        string
	Directory string
	AppliedAt time.Time
	UndoneAt  *time.Time
	Renames   []renamer.Rename
}

// Store is the SQLite-backed rename journal.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create history schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read history schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: journal has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// RecordBatch journals an applied batch and returns its generated ID.
// Empty batches are not recorded.
func (s *Store) RecordBatch(ctx context.Context, dir string, renames []renamer.Rename) (string, error) {
	if len(renames) == 0 {
		return "", nil
	}

	id := uuid.NewString()
	appliedAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO rename_batches (id, directory, applied_at) VALUES (?, ?, ?)",
		id, dir, appliedAt,
	); err != nil {
		return "", fmt.Errorf("insert batch: %w", err)
	}
	for i, entry := range renames {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO rename_entries (batch_id, position, from_name, to_name) VALUES (?, ?, ?, ?)",
			id, i, entry.From, entry.To,
		); err != nil {
			return "", fmt.Errorf("insert batch entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit batch: %w", err)
	}
	return id, nil
}

// LatestBatch returns the most recently applied batch that has not been
// undone.
func (s *Store) LatestBatch(ctx context.Context) (*Batch, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM rename_batches WHERE undone_at IS NULL ORDER BY applied_at DESC LIMIT 1",
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoBatches
	}
	if err != nil {
		return nil, fmt.Errorf("find latest batch: %w", err)
	}
	return s.GetBatch(ctx, id)
}

// GetBatch loads one batch with its rename entries in application order.
func (s *Store) GetBatch(ctx context.Context, id string) (*Batch, error) {
	batch := &Batch{ID: id}
	var appliedAt string
	var undoneAt sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT directory, applied_at, undone_at FROM rename_batches WHERE id = ?", id,
	).Scan(&batch.Directory, &appliedAt, &undoneAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	if batch.AppliedAt, err = time.Parse(time.RFC3339Nano, appliedAt); err != nil {
		return nil, fmt.Errorf("parse applied_at: %w", err)
	}
	if undoneAt.Valid {
		parsed, err := time.Parse(time.RFC3339Nano, undoneAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse undone_at: %w", err)
		}
		batch.UndoneAt = &parsed
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT from_name, to_name FROM rename_entries WHERE batch_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, fmt.Errorf("load batch entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var entry renamer.Rename
		if err := rows.Scan(&entry.From, &entry.To); err != nil {
			return nil, fmt.Errorf("scan batch entry: %w", err)
		}
		batch.Renames = append(batch.Renames, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch entries: %w", err)
	}
	return batch, nil
}

// ListBatches returns up to limit batches, newest first, without entries.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, directory, applied_at, undone_at FROM rename_batches ORDER BY applied_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var batch Batch
		var appliedAt string
		var undoneAt sql.NullString
		if err := rows.Scan(&batch.ID, &batch.Directory, &appliedAt, &undoneAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if batch.AppliedAt, err = time.Parse(time.RFC3339Nano, appliedAt); err != nil {
			return nil, fmt.Errorf("parse applied_at: %w", err)
		}
		if undoneAt.Valid {
			parsed, err := time.Parse(time.RFC3339Nano, undoneAt.String)
			if err != nil {
				return nil, fmt.Errorf("parse undone_at: %w", err)
			}
			batch.UndoneAt = &parsed
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return batches, nil
}

// MarkUndone stamps a batch as undone.
func (s *Store) MarkUndone(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE rename_batches SET undone_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("mark batch undone: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrBatchNotFound, id)
	}
	return nil
}
