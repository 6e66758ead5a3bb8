// Package sqlite provides SQLite-based persistent storage for the
// gamification engine. Uses WAL mode for concurrent reads and
// crash-safe writes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// dbtx is the query surface shared by *sql.DB and *sql.Tx. Repository
// methods run against it so the same code serves both transactional and
// autocommit access.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	conn *sql.DB
	q    dbtx
}

// Open creates or opens the SQLite database at dir/gamify.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "gamify.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	conn.SetMaxOpenConns(1) // SQLite is single-writer
	conn.SetMaxIdleConns(1)

	d := &DB{conn: conn, q: conn}
	if err := d.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.conn.Ping()
}

// WithTx runs fn against a transactional view of the store. All writes
// fn makes are committed together or rolled back together — the
// atomicity boundary for one gamification event. Nested calls reuse
// the enclosing transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *DB) error) error {
	if _, ok := d.q.(*sql.Tx); ok {
		return fn(d)
	}

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&DB{conn: d.conn, q: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Cached per-user XP aggregate. total_xp mirrors the ledger sum;
		// level is a pure function of total_xp.
		`CREATE TABLE IF NOT EXISTS xp_summaries (
			user_id  TEXT PRIMARY KEY,
			total_xp INTEGER NOT NULL DEFAULT 0,
			level    INTEGER NOT NULL DEFAULT 1
		)`,

		// Append-only XP earn log — the source of truth for total XP.
		`CREATE TABLE IF NOT EXISTS xp_ledger (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			amount     INTEGER NOT NULL,
			source     TEXT NOT NULL,
			source_id  TEXT,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_user ON xp_ledger(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_source ON xp_ledger(user_id, source)`,

		// Daily login streaks
		`CREATE TABLE IF NOT EXISTS streaks (
			user_id    TEXT PRIMARY KEY,
			current    INTEGER NOT NULL DEFAULT 0,
			longest    INTEGER NOT NULL DEFAULT 0,
			last_login TEXT
		)`,

		// Badge catalog (seeded once, immutable afterwards)
		`CREATE TABLE IF NOT EXISTS badges (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			name           TEXT UNIQUE NOT NULL,
			description    TEXT NOT NULL,
			icon           TEXT NOT NULL,
			criteria_type  TEXT NOT NULL,
			criteria_value INTEGER NOT NULL
		)`,

		// Badge awards — at most one per (user, badge), permanent
		`CREATE TABLE IF NOT EXISTS badge_awards (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id   TEXT NOT NULL,
			badge_id  INTEGER NOT NULL REFERENCES badges(id),
			earned_at INTEGER NOT NULL,
			UNIQUE(user_id, badge_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_awards_user ON badge_awards(user_id)`,

		// Scored quiz attempts (history + quizzes_completed metric)
		`CREATE TABLE IF NOT EXISTS quiz_attempts (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			quiz_set_id  TEXT NOT NULL,
			score        INTEGER NOT NULL,
			total        INTEGER NOT NULL,
			xp_earned    INTEGER NOT NULL,
			completed_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user ON quiz_attempts(user_id, completed_at)`,
	}

	for _, m := range migrations {
		if _, err := d.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
