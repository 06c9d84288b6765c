package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/db"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	slot       TEXT PRIMARY KEY,
	world      TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS actions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	slot        TEXT NOT NULL,
	action_type TEXT NOT NULL,
	body        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS actions_slot_id_idx ON actions (slot, id);
`

// SQLiteStore keeps save slots in a local SQLite file.
type SQLiteStore struct {
	sqlDB *sql.DB
	slot  string
}

// OpenSQLiteStore opens path and creates the tables if needed.
func OpenSQLiteStore(ctx context.Context, path, slot string) (*SQLiteStore, error) {
	sqlDB, err := db.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	if slot == "" {
		slot = "default"
	}
	return &SQLiteStore{sqlDB: sqlDB, slot: slot}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (game.World, bool, error) {
	var raw string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT world FROM snapshots WHERE slot = ?`, s.slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return game.World{}, false, nil
	}
	if err != nil {
		return game.World{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	var w game.World
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return game.World{}, false, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	return w, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, w game.World) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	if _, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO snapshots (slot, world, updated_at)
		VALUES (?, ?, unixepoch())
		ON CONFLICT (slot) DO UPDATE SET world = excluded.world, updated_at = excluded.updated_at
	`, s.slot, string(raw)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, a game.Action) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshalling action: %w", err)
	}
	if _, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO actions (slot, action_type, body) VALUES (?, ?, ?)
	`, s.slot, string(a.Type), string(raw)); err != nil {
		return fmt.Errorf("append action: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Actions(ctx context.Context) ([]game.Action, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT body FROM actions WHERE slot = ? ORDER BY id`, s.slot)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	out := []game.Action{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var a game.Action
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, fmt.Errorf("decode action: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
