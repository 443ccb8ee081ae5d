// Package storage is the durable boundary for learning data. The engine
// holds authoritative in-memory copies between calls; this store is a
// durable cache loaded once at init and written after each session end.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielpatrickdp/stagecraft/internal/collector"
	"github.com/danielpatrickdp/stagecraft/internal/insight"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
	_ "modernc.org/sqlite"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS player_profiles (
	player_id    TEXT PRIMARY KEY,
	profile_json TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	session_id   TEXT PRIMARY KEY,
	player_id    TEXT NOT NULL,
	session_json TEXT NOT NULL,
	ended_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player_id);

CREATE TABLE IF NOT EXISTS insights (
	insight_id   TEXT PRIMARY KEY,
	player_id    TEXT NOT NULL,
	insight_json TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS generation_log (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	pattern_id     TEXT NOT NULL,
	stage_number   INTEGER NOT NULL,
	seed           INTEGER NOT NULL,
	player_id      TEXT,
	budget         REAL NOT NULL,
	primitives     TEXT NOT NULL,
	repaired       INTEGER NOT NULL DEFAULT 0,
	repair_actions TEXT,
	created_at     TEXT NOT NULL
);
`

// #endregion schema

// #region store

// Store persists learning data in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("storage: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region load-all

// LearningData is everything the engine rehydrates at initialization.
type LearningData struct {
	Profiles map[string]profile.Profile
	Sessions []collector.Session
}

// LoadAll reads every stored profile and session.
func (s *Store) LoadAll() (LearningData, error) {
	data := LearningData{Profiles: make(map[string]profile.Profile)}

	rows, err := s.db.Query(`SELECT player_id, profile_json FROM player_profiles`)
	if err != nil {
		return data, fmt.Errorf("storage: load profiles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var playerID, blob string
		if err := rows.Scan(&playerID, &blob); err != nil {
			return data, fmt.Errorf("storage: scan profile: %w", err)
		}
		var p profile.Profile
		if err := json.Unmarshal([]byte(blob), &p); err != nil {
			return data, fmt.Errorf("storage: decode profile %s: %w", playerID, err)
		}
		data.Profiles[playerID] = p
	}
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("storage: iterate profiles: %w", err)
	}

	sessRows, err := s.db.Query(`SELECT session_json FROM sessions ORDER BY ended_at ASC`)
	if err != nil {
		return data, fmt.Errorf("storage: load sessions: %w", err)
	}
	defer sessRows.Close()
	for sessRows.Next() {
		var blob string
		if err := sessRows.Scan(&blob); err != nil {
			return data, fmt.Errorf("storage: scan session: %w", err)
		}
		var sess collector.Session
		if err := json.Unmarshal([]byte(blob), &sess); err != nil {
			return data, fmt.Errorf("storage: decode session: %w", err)
		}
		data.Sessions = append(data.Sessions, sess)
	}
	if err := sessRows.Err(); err != nil {
		return data, fmt.Errorf("storage: iterate sessions: %w", err)
	}

	return data, nil
}

// #endregion load-all

// #region save-all

// SaveAll upserts every profile and inserts any sessions and insights not
// yet stored. Call after each session end; a failure here must be logged
// and retried by the caller, never allowed to block gameplay.
func (s *Store) SaveAll(profiles map[string]profile.Profile, sessions []collector.Session, insights []insight.Insight) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin tx: %w", err)
	}
	defer tx.Rollback()

	for playerID, p := range profiles {
		blob, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("storage: encode profile %s: %w", playerID, err)
		}
		_, err = tx.Exec(
			`INSERT INTO player_profiles (player_id, profile_json, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(player_id) DO UPDATE SET profile_json = excluded.profile_json, updated_at = excluded.updated_at`,
			playerID, string(blob), p.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("storage: save profile %s: %w", playerID, err)
		}
	}

	for _, sess := range sessions {
		blob, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("storage: encode session %s: %w", sess.ID, err)
		}
		_, err = tx.Exec(
			`INSERT OR IGNORE INTO sessions (session_id, player_id, session_json, ended_at) VALUES (?, ?, ?, ?)`,
			sess.ID, sess.PlayerID, string(blob), sess.EndedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("storage: save session %s: %w", sess.ID, err)
		}
	}

	for _, in := range insights {
		blob, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("storage: encode insight %s: %w", in.ID, err)
		}
		_, err = tx.Exec(
			`INSERT OR IGNORE INTO insights (insight_id, player_id, insight_json, created_at) VALUES (?, ?, ?, ?)`,
			in.ID, in.PlayerID, string(blob), in.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("storage: save insight %s: %w", in.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// #endregion save-all

// #region insights-query

// InsightsFor returns stored insights for a player, newest first.
func (s *Store) InsightsFor(playerID string) ([]insight.Insight, error) {
	rows, err := s.db.Query(
		`SELECT insight_json FROM insights WHERE player_id = ? ORDER BY created_at DESC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("storage: load insights: %w", err)
	}
	defer rows.Close()

	var out []insight.Insight
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("storage: scan insight: %w", err)
		}
		var in insight.Insight
		if err := json.Unmarshal([]byte(blob), &in); err != nil {
			return nil, fmt.Errorf("storage: decode insight: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// #endregion insights-query
