package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/supportdesk/ticket-triage/internal/config"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
	id            TEXT PRIMARY KEY,
	source_path   TEXT NOT NULL,
	status        TEXT NOT NULL,
	ticket_count  INTEGER NOT NULL DEFAULT 0,
	error         TEXT NOT NULL DEFAULT '',
	summary       TEXT,
	started_at    TEXT NOT NULL,
	finished_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pipeline_runs_started_at ON pipeline_runs(started_at DESC);
`

// SQLite wraps an embedded database used for run history when no postgres
// DSN is configured.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens the database at cfg.Path and creates the schema. It returns
// a nil *SQLite when no path is configured.
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	if cfg.Path == "" {
		return nil, nil
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}

	logger.Info("opened sqlite run history", zap.String("path", cfg.Path))
	return &SQLite{DB: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}

// Ping verifies the database is usable.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite not configured")
	}
	return s.DB.PingContext(ctx)
}
