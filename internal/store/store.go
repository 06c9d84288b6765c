// Package store persists the World snapshot and the journal of accepted
// actions.
package store

import (
	"context"
	"errors"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

var (
	ErrClosed       = errors.New("store closed")
	ErrUnknownStore = errors.New("unknown store kind")
)

// Store is the persistence adapter around the pure engine. Load reports
// false when no snapshot was saved yet.
type Store interface {
	Load(ctx context.Context) (game.World, bool, error)
	Save(ctx context.Context, w game.World) error
	Append(ctx context.Context, a game.Action) error
	Actions(ctx context.Context) ([]game.Action, error)
	Close() error
}

// Replay rebuilds a World from a journal, starting at the default World.
func Replay(actions []game.Action) game.World {
	return game.Replay(game.DefaultWorld(), actions)
}

// Rebuild loads the journal from s and folds it.
func Rebuild(ctx context.Context, s Store) (game.World, error) {
	actions, err := s.Actions(ctx)
	if err != nil {
		return game.World{}, err
	}
	return Replay(actions), nil
}
