// Package syncq holds actions the CLI could not deliver so `studio sync` can
// send them later, in order.
package syncq

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

type Entry struct {
	Action         game.Action `json:"action"`
	IdempotencyKey string      `json:"idempotency_key"`
	QueuedAt       time.Time   `json:"queued_at"`
}

type Queue struct {
	path string
}

// Open returns the queue kept in dir, creating the directory if needed.
func Open(dir string) (*Queue, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".studio")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Queue{path: filepath.Join(dir, "queue.json")}, nil
}

func (q *Queue) Load() ([]Entry, error) {
	raw, err := os.ReadFile(q.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return []Entry{}, nil
	}
	var out []Entry
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (q *Queue) Save(entries []Entry) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(q.path, raw, 0o600)
}

// Push queues a under the idempotency key of the attempt that failed, so a
// request that did reach the server is not applied twice.
func (q *Queue) Push(a game.Action, key string) error {
	entries, err := q.Load()
	if err != nil {
		return err
	}
	entries = append(entries, Entry{Action: a, IdempotencyKey: key, QueuedAt: time.Now().UTC()})
	return q.Save(entries)
}

// Drain hands queued entries to send in order. It stops at the first failure
// and keeps that entry and everything after it queued.
func (q *Queue) Drain(send func(Entry) error) (int, error) {
	entries, err := q.Load()
	if err != nil {
		return 0, err
	}
	for i, e := range entries {
		if err := send(e); err != nil {
			if saveErr := q.Save(entries[i:]); saveErr != nil {
				return i, errors.Join(err, saveErr)
			}
			return i, err
		}
	}
	return len(entries), q.Save([]Entry{})
}
