// Package sqlite persists accepted presence transitions so the in-memory
// event log can be rebuilt after a restart.
package sqlite

import (
	"database/sql"
	"fmt"
	"presencewatch/internal/core/domain"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Journal is an append-only table of presence transitions.
type Journal struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates a journal at the given database path. ":memory:" is
// accepted for throwaway journals.
func Open(path string, logger *zap.Logger) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer; also keeps a :memory: database on a single connection
	db.SetMaxOpenConns(1)

	j, err := NewJournal(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// NewJournal wraps an existing connection and creates the schema.
func NewJournal(db *sql.DB, logger *zap.Logger) (*Journal, error) {
	j := &Journal{db: db, logger: logger}
	if err := j.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	if _, err := j.db.Exec(`
	CREATE TABLE IF NOT EXISTS presence_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		device_id   TEXT    NOT NULL,
		occurred_at INTEGER NOT NULL,
		state       TEXT    NOT NULL
	)`); err != nil {
		return err
	}
	_, err := j.db.Exec(`CREATE INDEX IF NOT EXISTS idx_presence_events_device
		ON presence_events (device_id, id)`)
	return err
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append records one accepted transition.
func (j *Journal) Append(ev domain.PresenceEvent) error {
	_, err := j.db.Exec(
		`INSERT INTO presence_events (device_id, occurred_at, state) VALUES (?, ?, ?)`,
		ev.DeviceID, ev.Timestamp.UnixNano(), ev.State.String(),
	)
	if err != nil {
		return fmt.Errorf("journal %s: %w", ev.DeviceID, err)
	}
	return nil
}

// Replay feeds every recorded transition to fn in insertion order and
// returns how many were replayed. It stops at the first error from fn.
func (j *Journal) Replay(fn func(ev domain.PresenceEvent) error) (int, error) {
	rows, err := j.db.Query(
		`SELECT device_id, occurred_at, state FROM presence_events ORDER BY id`,
	)
	if err != nil {
		return 0, fmt.Errorf("replay query: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var (
			deviceID string
			nanos    int64
			rawState string
		)
		if err := rows.Scan(&deviceID, &nanos, &rawState); err != nil {
			return n, fmt.Errorf("replay scan: %w", err)
		}

		state, err := domain.ParseState(rawState)
		if err != nil {
			j.logger.Warn("Skipping journal row with unknown state",
				zap.String("device_id", deviceID),
				zap.String("state", rawState))
			continue
		}

		ev := domain.PresenceEvent{
			DeviceID:  deviceID,
			Timestamp: time.Unix(0, nanos).UTC(),
			State:     state,
		}
		if err := fn(ev); err != nil {
			return n, fmt.Errorf("replay %s: %w", deviceID, err)
		}
		n++
	}
	return n, rows.Err()
}
