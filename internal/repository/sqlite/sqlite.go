// Package sqlite implements the repository interfaces on an embedded SQLite
// database.
//
// We use modernc.org/sqlite rather than mattn/go-sqlite3 because it is a pure
// Go translation of SQLite — no CGo, no C compiler, painless cross-compiles.
// The driver registers itself with database/sql under the name "sqlite" via
// the blank import below.
//
// Every table uses INTEGER PRIMARY KEY AUTOINCREMENT. That gives each entity
// type a monotonically increasing id counter whose values are never reused,
// even after a row is deleted — an invariant the rest of the app relies on.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository interfaces.
// Constructed once per process (or once per test with ":memory:"), closed by
// the owner on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath, configures it, runs migrations and seeds
// the catalog tables.
//
// dbPath examples:
//   - "data/mindwell.db" — file-based, persistent
//   - ":memory:"         — in-memory, gone on close (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path or permissions problem
	// surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress. SQLite
	// still serializes writers, which is what makes each store mutation
	// atomic with respect to concurrent requests for the same row.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite. We need them on: every
	// journal and mood entry must reference an existing user at creation.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	if err := db.seedCatalog(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: seeding catalog: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Wherever New is called, defer Close.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every start.
//
// username is UNIQUE COLLATE NOCASE — "Alice" and "alice" collide at the
// storage level, so the duplicate-username rule holds even if a caller skips
// the service-level check.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			username               TEXT NOT NULL UNIQUE COLLATE NOCASE,
			password_hash          TEXT NOT NULL,
			email                  TEXT NOT NULL,
			is_premium             INTEGER NOT NULL DEFAULT 0,
			stripe_customer_id     TEXT NOT NULL DEFAULT '',
			stripe_subscription_id TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS journal_entries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id),
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			mood       TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_journal_entries_user_id
			ON journal_entries(user_id, created_at);

		CREATE TABLE IF NOT EXISTS mood_entries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id),
			mood       TEXT NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_mood_entries_user_id
			ON mood_entries(user_id, created_at);

		CREATE TABLE IF NOT EXISTS mindfulness_sessions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			duration    INTEGER NOT NULL,
			audio_url   TEXT NOT NULL,
			is_premium  INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS reflection_prompts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			prompt     TEXT NOT NULL,
			is_premium INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
