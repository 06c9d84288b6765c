package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

const postgresSchema = `
CREATE SCHEMA IF NOT EXISTS studio;

CREATE TABLE IF NOT EXISTS studio.snapshots (
	slot       TEXT PRIMARY KEY,
	world      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS studio.actions (
	id          BIGSERIAL PRIMARY KEY,
	slot        TEXT NOT NULL,
	action_type TEXT NOT NULL,
	body        JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS actions_slot_id_idx ON studio.actions (slot, id);
`

// PostgresStore keeps save slots in the studio schema. The pool is owned by
// the caller.
type PostgresStore struct {
	db   *pgxpool.Pool
	slot string
}

func NewPostgresStore(pool *pgxpool.Pool, slot string) *PostgresStore {
	if slot == "" {
		slot = "default"
	}
	return &PostgresStore{db: pool, slot: slot}
}

// EnsureSchema creates the studio tables if they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (game.World, bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `
		SELECT world
		FROM studio.snapshots
		WHERE slot = $1
	`, s.slot).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.World{}, false, nil
	}
	if err != nil {
		return game.World{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	var w game.World
	if err := json.Unmarshal(raw, &w); err != nil {
		return game.World{}, false, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	return w, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, w game.World) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	if _, err := s.db.Exec(ctx, `
		INSERT INTO studio.snapshots (slot, world, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET world = $2, updated_at = now()
	`, s.slot, raw); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, a game.Action) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshalling action: %w", err)
	}
	if _, err := s.db.Exec(ctx, `
		INSERT INTO studio.actions (slot, action_type, body)
		VALUES ($1, $2, $3)
	`, s.slot, string(a.Type), raw); err != nil {
		return fmt.Errorf("append action: %w", err)
	}
	return nil
}

func (s *PostgresStore) Actions(ctx context.Context) ([]game.Action, error) {
	rows, err := s.db.Query(ctx, `
		SELECT body
		FROM studio.actions
		WHERE slot = $1
		ORDER BY id
	`, s.slot)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	out := []game.Action{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var a game.Action
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("decode action: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close is a no-op; the pool belongs to the caller.
func (s *PostgresStore) Close() error { return nil }
