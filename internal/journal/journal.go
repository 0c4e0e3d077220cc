// Package journal persists every resolved state transition to SQLite so the
// pet's history survives restarts and can be inspected offline.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/deskpet/internal/arbiter"
	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS transitions (
	event_id    TEXT PRIMARY KEY,
	previous    TEXT NOT NULL,
	current     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transitions_created_at
	ON transitions(created_at);
`
// #endregion schema

// #region row

// Row is one recorded transition.
type Row struct {
	EventID   string      `json:"event_id"`
	Previous  statedef.ID `json:"previous"`
	Current   statedef.ID `json:"current"`
	CreatedAt time.Time   `json:"created_at"`
}

// #endregion row

// #region journal

// Journal manages the transition log in SQLite.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database and runs migrations.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// #endregion journal

// #region record

// Record writes one transition row.
func (j *Journal) Record(ev arbiter.Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := j.db.Exec(
		`INSERT INTO transitions (event_id, previous, current, created_at)
		 VALUES (?, ?, ?, ?)`,
		uuid.New().String(),
		string(ev.Previous),
		string(ev.Current),
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record transition: %w", err)
	}
	return nil
}

// #endregion record

// #region queries

// Recent returns the most recent transitions, newest first.
func (j *Journal) Recent(limit int) ([]Row, error) {
	rows, err := j.db.Query(
		`SELECT event_id, previous, current, created_at
		 FROM transitions ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var prev, cur, createdStr string
		if err := rows.Scan(&r.EventID, &prev, &cur, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Previous = statedef.ID(prev)
		r.Current = statedef.ID(cur)
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountByState returns how many times each state has been entered.
func (j *Journal) CountByState() (map[statedef.ID]int, error) {
	rows, err := j.db.Query(
		`SELECT current, COUNT(*) FROM transitions GROUP BY current`,
	)
	if err != nil {
		return nil, fmt.Errorf("count transitions: %w", err)
	}
	defer rows.Close()

	counts := make(map[statedef.ID]int)
	for rows.Next() {
		var cur string
		var n int
		if err := rows.Scan(&cur, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[statedef.ID(cur)] = n
	}
	return counts, rows.Err()
}

// #endregion queries
