package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

// FileStore keeps one save slot as a JSON snapshot plus a JSON-lines
// journal in a directory.
type FileStore struct {
	dir  string
	slot string

	mu     sync.Mutex
	closed bool
}

func NewFileStore(dir, slot string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	if slot == "" {
		slot = "default"
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileStore{dir: dir, slot: slot}, nil
}

func (s *FileStore) snapshotPath() string {
	return filepath.Join(s.dir, s.slot+".json")
}

func (s *FileStore) journalPath() string {
	return filepath.Join(s.dir, s.slot+".actions.jsonl")
}

func (s *FileStore) Load(ctx context.Context) (game.World, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return game.World{}, false, ErrClosed
	}

	raw, err := os.ReadFile(s.snapshotPath())
	if errors.Is(err, os.ErrNotExist) {
		return game.World{}, false, nil
	}
	if err != nil {
		return game.World{}, false, fmt.Errorf("reading snapshot: %w", err)
	}
	var w game.World
	if err := json.Unmarshal(raw, &w); err != nil {
		return game.World{}, false, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	return w, true, nil
}

func (s *FileStore) Save(ctx context.Context, w game.World) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	raw, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	return atomicWrite(s.snapshotPath(), raw, 0o600)
}

func (s *FileStore) Append(ctx context.Context, a game.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	line, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshalling action: %w", err)
	}
	f, err := os.OpenFile(s.journalPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing journal: %w", err)
	}
	return f.Close()
}

func (s *FileStore) Actions(ctx context.Context) ([]game.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	f, err := os.Open(s.journalPath())
	if errors.Is(err, os.ErrNotExist) {
		return []game.Action{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = f.Close() }()

	return ReadJournal(f)
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ReadJournal decodes a JSON-lines journal. Blank lines are skipped.
func ReadJournal(r io.Reader) ([]game.Action, error) {
	out := []game.Action{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var a game.Action
		if err := json.Unmarshal(b, &a); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", line, err)
		}
		out = append(out, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	return out, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
