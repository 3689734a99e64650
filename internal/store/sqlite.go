// internal/store/sqlite.go
//
// SQLite implementation of the session Store interface.
// Lets the HTTP host survive restarts without holding live sessions in RAM.
// Sessions are serialized to JSON, one row per session; rows are deleted as
// soon as the host is done with a terminal session, so nothing outlives the
// game it belongs to.
//
// Database setup:
//   - Parent directory is created for relative paths (e.g. ./data/gridle.db).
//   - WAL journaling + busy timeout configured via DSN, foreign keys via PRAGMA.
//   - Schema applied idempotently on open.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gridle-game/gridle/internal/game"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    state      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// sqlite is a SQLite-backed Store implementation.
type sqlite struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if missing) the database at dsn and
// applies the schema. The returned Store is safe for concurrent use;
// database/sql serializes access to the single connection pool.
func NewSQLiteStore(dsn string) (Store, error) {
	// Ensure directory exists for ./data/gridle.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("store: set pragmas: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &sqlite{db: db}, nil
}

// Save upserts the serialized session.
func (s *sqlite) Save(ctx context.Context, sess *game.Session) error {
	blob, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("store: marshal session: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sessions (id, state, updated_at) VALUES (?,?,?)
        ON CONFLICT(id) DO UPDATE SET state=excluded.state, updated_at=excluded.updated_at`,
		sess.ID, string(blob), now)
	if err != nil {
		return fmt.Errorf("store: save session: %w", err)
	}
	return nil
}

// Get loads and deserializes one session row.
func (s *sqlite) Get(ctx context.Context, id string) (*game.Session, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM sessions WHERE id=?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load session: %w", err)
	}
	var sess game.Session
	if err := json.Unmarshal([]byte(blob), &sess); err != nil {
		return nil, fmt.Errorf("store: unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session row; missing rows are fine.
func (s *sqlite) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id); err != nil {
		return fmt.Errorf("store: delete session: %w", err)
	}
	return nil
}
