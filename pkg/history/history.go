// Package history keeps a SQLite ledger of rendered pages.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS render_runs (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    template_path TEXT NOT NULL,
    output_path   TEXT NOT NULL,
    title         TEXT NOT NULL DEFAULT '',
    bytes         INTEGER NOT NULL DEFAULT 0,
    checksum      TEXT NOT NULL DEFAULT '',
    unresolved    INTEGER NOT NULL DEFAULT 0,
    rendered_at   DATETIME NOT NULL
);
`

// DefaultLimit is the number of runs Recent returns when no limit is given.
const DefaultLimit = 20

// Run is a single completed render.
type Run struct {
	ID           int64     `json:"id"`
	TemplatePath string    `json:"template_path"`
	OutputPath   string    `json:"output_path"`
	Title        string    `json:"title"`
	Bytes        int       `json:"bytes"`
	Checksum     string    `json:"checksum"`
	Unresolved   int       `json:"unresolved"`
	RenderedAt   time.Time `json:"rendered_at"`
}

// SetupSchema creates the tables used by Store if they do not exist.
func SetupSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// Store records and lists runs. The schema must already exist.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a Store on top of db.
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// Record inserts run and returns its ID. A zero RenderedAt is set to now.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if run.RenderedAt.IsZero() {
		run.RenderedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO render_runs (template_path, output_path, title, bytes, checksum, unresolved, rendered_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, run.TemplatePath, run.OutputPath, run.Title, run.Bytes, run.Checksum, run.Unresolved, run.RenderedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert render run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read render run id: %w", err)
	}
	s.logger.Debug("Recorded render run", "id", id, "output", run.OutputPath)
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, template_path, output_path, title, bytes, checksum, unresolved, rendered_at
        FROM render_runs ORDER BY id DESC LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query render runs: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var runs []Run
	for rows.Next() {
		var run Run
		if err = rows.Scan(&run.ID, &run.TemplatePath, &run.OutputPath, &run.Title, &run.Bytes, &run.Checksum, &run.Unresolved, &run.RenderedAt); err != nil {
			return nil, fmt.Errorf("failed to scan render run: %w", err)
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate render runs: %w", err)
	}
	return runs, nil
}
