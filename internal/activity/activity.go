// Package activity provides the SQLite-backed recent-activity feed shown on
// the dashboard. Every successful mutation — an alert resolved, a report
// deleted, a member invited — is recorded with who did it and which record
// it touched, and the feed is queryable newest-first.
//
// The store defaults to an in-memory database so that, like every other
// dashboard collection, a restart starts the feed empty. Pointing it at a
// file path is supported for deployments that want the feed to survive
// restarts.
//
// # WAL mode
//
// File-backed databases are opened with PRAGMA journal_mode = WAL so the
// HTTP handlers recording actions never block the reader serving the feed.
package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register "sqlite" driver with database/sql
)

// Entry is one recorded action.
type Entry struct {
	ID     int64  `json:"id"`
	Actor  string `json:"actor"`
	Action string `json:"action"`
	// Entity names the collection the action touched: alert, database,
	// recommendation, report, member.
	Entity   string    `json:"entity"`
	EntityID string    `json:"entityId"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// Store is a SQLite-backed activity feed. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the activity database at path. ":memory:" keeps
// the feed in memory only.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("activity: open %q: %w", path, err)
	}

	// SQLite allows only one writer at a time; a single pooled connection
	// serialises concurrent Record calls instead of surfacing
	// "database is locked" errors. It also keeps an in-memory database
	// alive — each new connection would otherwise see a fresh empty one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("activity: set WAL mode: %w", err)
	}
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("activity: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

const ddl = `
CREATE TABLE IF NOT EXISTS activity (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    actor     TEXT NOT NULL,
    action    TEXT NOT NULL,
    entity    TEXT NOT NULL,
    entity_id TEXT NOT NULL,
    message   TEXT NOT NULL,
    at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
CREATE INDEX IF NOT EXISTS idx_activity_at ON activity (id DESC);
`

// Record appends one action to the feed.
func (s *Store) Record(ctx context.Context, actor, action, entity, entityID, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (actor, action, entity, entity_id, message, at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		actor, action, entity, entityID, message,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("activity: record: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first. n ≤ 0 returns nil without
// querying.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, actor, action, entity, entity_id, message, at
		 FROM   activity
		 ORDER  BY id DESC
		 LIMIT  ?`, n)
	if err != nil {
		return nil, fmt.Errorf("activity: recent query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e     Entry
			atStr string
		)
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Entity, &e.EntityID, &e.Message, &atStr); err != nil {
			return nil, fmt.Errorf("activity: recent scan: %w", err)
		}
		e.At, err = time.Parse(time.RFC3339Nano, atStr)
		if err != nil {
			e.At, _ = time.Parse(time.RFC3339, atStr)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity: recent rows: %w", err)
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
