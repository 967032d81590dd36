// ABOUTME: SQLite-backed audit journal using modernc.org/sqlite
// ABOUTME: Opens the database, enables WAL and creates the schema on first use

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var (
	// ErrInvalidFilter is returned when an audit filter cannot be satisfied.
	ErrInvalidFilter = errors.New("invalid audit filter")
	// ErrUnknownAction is returned when appending an action outside ValidAuditActions.
	ErrUnknownAction = errors.New("unknown audit action")
)

// Journal is the audit journal used by the web console.
type Journal interface {
	AppendAuditLog(ctx context.Context, e *AuditEntry) error
	ListAuditLog(ctx context.Context, f AuditFilter) ([]AuditEntry, error)
}

// SQLiteStore implements Journal on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ Journal = (*SQLiteStore)(nil)

// NewSQLiteStore opens the journal at path, creating parent directories and
// the schema if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("audit journal opened", "path", path)
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_log (
			audit_id    TEXT PRIMARY KEY,
			session_id  TEXT NOT NULL,
			action      TEXT NOT NULL,
			target_type TEXT NOT NULL,
			target_id   TEXT NOT NULL,
			ts          TEXT NOT NULL,
			detail_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_audit_log_ts ON audit_log(ts);
		CREATE INDEX IF NOT EXISTS idx_audit_log_session ON audit_log(session_id);
		CREATE INDEX IF NOT EXISTS idx_audit_log_target ON audit_log(target_type, target_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
