// Package service owns the live World: it serializes dispatches, persists
// every accepted action and relays what it produced.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/notify"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/store"
)

var ErrUnknownAction = errors.New("unknown action type")

type Service struct {
	store  store.Store
	pub    notify.Publisher
	router *game.Router
	log    *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	world game.World
	seen  map[string]struct{}
	keys  []string
}

// Idempotency keys remembered for retried dispatches.
const maxKeys = 512

type Option func(*Service)

func WithPublisher(p notify.Publisher) Option {
	return func(s *Service) { s.pub = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New loads the saved World from st. The journal wins over the snapshot: when
// the snapshot is missing or lags behind, the World is rebuilt from the
// journal and saved again. A store with neither starts from the default World.
func New(ctx context.Context, st store.Store, logger *slog.Logger, opts ...Option) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:  st,
		pub:    notify.Nop{},
		router: game.DefaultRouter(),
		log:    logger,
		now:    time.Now,
		seen:   map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}

	w, err := s.restore(ctx)
	if err != nil {
		return nil, err
	}
	s.world = w
	return s, nil
}

func (s *Service) restore(ctx context.Context) (game.World, error) {
	w, ok, err := s.store.Load(ctx)
	if err != nil {
		return game.World{}, fmt.Errorf("load world: %w", err)
	}
	actions, err := s.store.Actions(ctx)
	if err != nil {
		return game.World{}, fmt.Errorf("load journal: %w", err)
	}

	switch {
	case len(actions) > 0:
		rebuilt := store.Replay(actions)
		if ok {
			same, err := worldsEqual(rebuilt, w)
			if err != nil {
				return game.World{}, err
			}
			if same {
				return w, nil
			}
		}
		s.log.Warn("snapshot behind journal, rebuilt", "actions", len(actions), "snapshot", ok)
		w = rebuilt
	case ok:
		return w, nil
	default:
		w = game.DefaultWorld()
		s.log.Info("started new game")
	}
	if err := s.store.Save(ctx, w); err != nil {
		return game.World{}, fmt.Errorf("save world: %w", err)
	}
	return w, nil
}

// World returns the current snapshot.
func (s *Service) World() game.World {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world
}

// Dispatch applies a to the current World. An action is committed once it
// is journaled; the snapshot save that follows is retried by the next
// dispatch and reconciled by New if it keeps failing.
func (s *Service) Dispatch(ctx context.Context, a game.Action) (game.World, error) {
	a, err := s.admit(a)
	if err != nil {
		return game.World{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(ctx, a)
}

// DispatchOnce is Dispatch keyed by an idempotency key: a key seen before
// returns the current World with replayed set and applies nothing.
func (s *Service) DispatchOnce(ctx context.Context, key string, a game.Action) (game.World, bool, error) {
	if key == "" {
		w, err := s.Dispatch(ctx, a)
		return w, false, err
	}
	a, err := s.admit(a)
	if err != nil {
		return game.World{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.seen[key]; dup {
		return s.world, true, nil
	}
	w, err := s.dispatchLocked(ctx, a)
	if err != nil {
		return w, false, err
	}
	s.rememberLocked(key)
	return w, false, nil
}

// admit rejects what the engine would not route or what breaks an entity
// invariant, then stamps the action.
func (s *Service) admit(a game.Action) (game.Action, error) {
	if !s.router.Claims(a.Type) {
		s.log.Warn("rejected action", "type", a.Type)
		return a, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	if err := game.CheckAction(a); err != nil {
		s.log.Warn("rejected action", "type", a.Type, "err", err)
		return a, err
	}
	return game.Stamp(a, s.now()), nil
}

// dispatchLocked must be called with s.mu held.
func (s *Service) dispatchLocked(ctx context.Context, a game.Action) (game.World, error) {
	before := s.world
	next := s.router.Reduce(before, a)

	if err := s.store.Append(ctx, a); err != nil {
		s.log.Error("journal append failed", "type", a.Type, "err", err)
		return game.World{}, fmt.Errorf("journal action: %w", err)
	}
	s.world = next
	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error("snapshot save failed, journal is ahead", "type", a.Type, "err", err)
	}

	for _, evt := range notify.Diff(before, next) {
		if err := s.pub.Publish(ctx, evt); err != nil {
			s.log.Warn("publish failed", "kind", evt.Kind, "err", err)
		}
	}
	return next, nil
}

func (s *Service) rememberLocked(key string) {
	s.seen[key] = struct{}{}
	s.keys = append(s.keys, key)
	if len(s.keys) > maxKeys {
		delete(s.seen, s.keys[0])
		s.keys = s.keys[1:]
	}
}

// DispatchAll applies actions in order and stops at the first failure.
func (s *Service) DispatchAll(ctx context.Context, actions []game.Action) (game.World, int, error) {
	w := s.World()
	for i, a := range actions {
		next, err := s.Dispatch(ctx, a)
		if err != nil {
			return w, i, err
		}
		w = next
	}
	return w, len(actions), nil
}

// Reset replaces the World with the default one.
func (s *Service) Reset(ctx context.Context) (game.World, error) {
	return s.Dispatch(ctx, game.ResetGame())
}

// Actions returns the journal.
func (s *Service) Actions(ctx context.Context) ([]game.Action, error) {
	return s.store.Actions(ctx)
}

// Verify rebuilds the World from the journal and reports whether it matches
// the live snapshot.
func (s *Service) Verify(ctx context.Context) (bool, error) {
	rebuilt, err := store.Rebuild(ctx, s.store)
	if err != nil {
		return false, err
	}
	return worldsEqual(rebuilt, s.World())
}
