package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

func TestDispatchSendsHeaders(t *testing.T) {
	var got struct {
		auth, idem, contentType string
		action                  game.Action
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.auth = r.Header.Get("Authorization")
		got.idem = r.Header.Get("Idempotency-Key")
		got.contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got.action); err != nil {
			t.Errorf("decode action: %v", err)
		}
		_ = json.NewEncoder(w).Encode(game.DefaultWorld())
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", " tok ")
	w, err := c.Dispatch(context.Background(), game.UnlockGenre("rpg"), "key-1")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	testutil.AssertEqual(t, "auth", got.auth, "Bearer tok")
	testutil.AssertEqual(t, "idempotency key", got.idem, "key-1")
	testutil.AssertEqual(t, "content type", got.contentType, "application/json")
	testutil.AssertEqual(t, "action type", got.action.Type, game.TypeUnlockGenre)
	testutil.AssertEqual(t, "money", w.Money, game.StartingMoney)
}

func TestAPIErrorIsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"unknown action type: \"X\""}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").World(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	testutil.AssertEqual(t, "status", apiErr.Status, http.StatusUnprocessableEntity)
	testutil.AssertEqual(t, "message", apiErr.Message, `unknown action type: "X"`)
	testutil.AssertEqual(t, "retryable", Retryable(err), false)
}

func TestRetryable(t *testing.T) {
	tests := map[string]struct {
		err error
		exp bool
	}{
		"nil":          {err: nil, exp: false},
		"server error": {err: &APIError{Status: 503}, exp: true},
		"rejected":     {err: &APIError{Status: 400}, exp: false},
		"transport":    {err: errors.New("connection refused"), exp: true},
		"cancelled":    {err: context.Canceled, exp: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "retryable", Retryable(tt.err), tt.exp)
		})
	}
}

func TestActionsSince(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{"actions": []game.Action{game.AdvanceTime(1)}})
	}))
	defer srv.Close()

	actions, err := NewClient(srv.URL, "").Actions(context.Background(), 4)
	if err != nil {
		t.Fatalf("Actions: %v", err)
	}
	testutil.AssertEqual(t, "query", query, "since=4")
	testutil.AssertEqual(t, "count", len(actions), 1)
	testutil.AssertEqual(t, "type", actions[0].Type, game.TypeAdvanceTime)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Setenv("STUDIO_HOME", t.TempDir())

	s, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession empty: %v", err)
	}
	testutil.AssertEqual(t, "empty session", s, Session{})

	if err := SaveSession(Session{APIBaseURL: "http://studio:8080", Token: "t"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	s, err = LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	testutil.AssertEqual(t, "merged", s.Merge("http://localhost:8080", "env"), Session{APIBaseURL: "http://studio:8080", Token: "t"})

	if err := ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	s, _ = LoadSession()
	testutil.AssertEqual(t, "cleared", s.Merge("http://localhost:8080", ""), Session{APIBaseURL: "http://localhost:8080"})
}
