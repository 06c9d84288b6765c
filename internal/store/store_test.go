package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pixil98/go-testutil"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/db"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

func sampleJournal() []game.Action {
	return []game.Action{
		game.AddProject(game.Project{ID: "p1", Name: "Blaster", RequiredPoints: 50}),
		game.HireEmployee(game.Employee{ID: "e1", Skills: map[string]float64{"art": 25}}, 900),
		game.AssignEmployee("e1", "p1"),
		game.BuyStock("NIMBUS", 3, 95),
		game.AddNotification(game.Notification{ID: "n1", Timestamp: 1, Title: "Hi"}),
		game.DevelopProjects(1),
		game.UpdatePortfolio(game.PortfolioUpdate{Watchlist: []string{}}),
	}
}

// exerciseStore runs the same contract against every backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Load(ctx)
	testutil.AssertEqual(t, "load error", err, nil)
	testutil.AssertEqual(t, "found before save", ok, false)

	journal := sampleJournal()
	w := game.DefaultWorld()
	for _, a := range journal {
		w = game.Reduce(w, a)
		if err := s.Append(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := s.Save(ctx, w); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := s.Load(ctx)
	testutil.AssertEqual(t, "load error", err, nil)
	testutil.AssertEqual(t, "found after save", ok, true)
	if diff := cmp.Diff(w, loaded); diff != "" {
		t.Fatalf("snapshot mismatch (-saved +loaded):\n%s", diff)
	}

	actions, err := s.Actions(ctx)
	testutil.AssertEqual(t, "actions error", err, nil)
	testutil.AssertEqual(t, "actions length", len(actions), len(journal))
	if diff := cmp.Diff(journal, actions); diff != "" {
		t.Fatalf("journal mismatch (-appended +read):\n%s", diff)
	}

	rebuilt, err := Rebuild(ctx, s)
	testutil.AssertEqual(t, "rebuild error", err, nil)
	if diff := cmp.Diff(w, rebuilt); diff != "" {
		t.Fatalf("rebuild mismatch (-live +rebuilt):\n%s", diff)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), "slot-a")
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileStoreSlotsAreSeparate(t *testing.T) {
	dir := t.TempDir()
	a, _ := NewFileStore(dir, "a")
	b, _ := NewFileStore(dir, "b")
	ctx := context.Background()

	if err := a.Save(ctx, game.DefaultWorld()); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, ok, err := b.Load(ctx)
	testutil.AssertEqual(t, "load error", err, nil)
	testutil.AssertEqual(t, "slot b found", ok, false)

	_, err = os.Stat(filepath.Join(dir, "a.json.tmp"))
	testutil.AssertEqual(t, "temp file left behind", os.IsNotExist(err), true)
}

func TestFileStoreClosed(t *testing.T) {
	s, _ := NewFileStore(t.TempDir(), "")
	testutil.AssertEqual(t, "close error", s.Close(), nil)

	err := s.Save(context.Background(), game.DefaultWorld())
	testutil.AssertErrorContains(t, err, "store closed")
}

func TestReadJournal(t *testing.T) {
	in := strings.Join([]string{
		`{"type":"ADVANCE_TIME","payload":{"days":2}}`,
		``,
		`{"type":"MYSTERY","payload":[1,2]}`,
		`{"type":"UPDATE_MORALE","payload":20}`,
	}, "\n")
	actions, err := ReadJournal(strings.NewReader(in))
	testutil.AssertEqual(t, "read error", err, nil)
	testutil.AssertEqual(t, "actions length", len(actions), 3)

	w := Replay(actions)
	testutil.AssertEqual(t, "day", w.CurrentDate.Day, 3)
	testutil.AssertEqual(t, "morale", w.Morale, 20.0)

	_, err = ReadJournal(strings.NewReader("{\"type\":\"ADVANCE_TIME\"}\nnot json"))
	testutil.AssertErrorContains(t, err, "journal line 2")
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "studio.db"), "slot-a")
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("STUDIO_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("STUDIO_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	s := NewPostgresStore(pool, "test-"+game.NewID())
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	exerciseStore(t, s)
}
