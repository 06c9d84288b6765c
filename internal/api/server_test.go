package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pixil98/go-testutil"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/auth"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/config"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/service"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/store"
)

func newTestServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir(), "api")
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	svc, err := service.New(context.Background(), st, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	cfg := config.APIConfig{RequestTimeout: 5 * time.Second}
	srv := httptest.NewServer(New(cfg, nil, auth.NewTokenVerifier(token), svc).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any, header map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, "secret")
	resp := do(t, http.MethodGet, srv.URL+"/healthz", nil, nil)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)
}

func TestWorldStartsAtDefault(t *testing.T) {
	srv := newTestServer(t, "")
	resp := do(t, http.MethodGet, srv.URL+"/v1/world", nil, nil)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)
	got := decode[game.World](t, resp)
	if diff := cmp.Diff(game.DefaultWorld(), got); diff != "" {
		t.Fatalf("world mismatch (-want +got):\n%s", diff)
	}
}

func TestAuth(t *testing.T) {
	srv := newTestServer(t, "secret")
	tests := map[string]struct {
		header    map[string]string
		expStatus int
	}{
		"missing": {expStatus: http.StatusUnauthorized},
		"wrong":   {header: map[string]string{"Authorization": "Bearer nope"}, expStatus: http.StatusUnauthorized},
		"right":   {header: map[string]string{"Authorization": "Bearer secret"}, expStatus: http.StatusOK},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp := do(t, http.MethodGet, srv.URL+"/v1/world", nil, tt.header)
			testutil.AssertEqual(t, "status", resp.StatusCode, tt.expStatus)
		})
	}
}

func TestDispatchAction(t *testing.T) {
	srv := newTestServer(t, "")
	resp := do(t, http.MethodPost, srv.URL+"/v1/actions", game.BuyStock("NIMBUS", 10, 95), nil)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)

	w := decode[game.World](t, resp)
	testutil.AssertEqual(t, "money", w.Money, game.StartingMoney-950)
	h, ok := w.Portfolio.Holding("NIMBUS")
	testutil.AssertEqual(t, "holding", ok, true)
	testutil.AssertEqual(t, "quantity", h.Quantity, 10.0)
}

func TestDispatchIdempotencyKey(t *testing.T) {
	srv := newTestServer(t, "")
	header := map[string]string{"Idempotency-Key": "buy-1"}

	first := do(t, http.MethodPost, srv.URL+"/v1/actions", game.AdjustMoney(100), header)
	testutil.AssertEqual(t, "first status", first.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, "first replayed", first.Header.Get("Idempotent-Replayed"), "")

	second := do(t, http.MethodPost, srv.URL+"/v1/actions", game.AdjustMoney(100), header)
	testutil.AssertEqual(t, "second status", second.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, "second replayed", second.Header.Get("Idempotent-Replayed"), "true")

	w := decode[game.World](t, second)
	testutil.AssertEqual(t, "money", w.Money, game.StartingMoney+100)
}

func TestDispatchRejections(t *testing.T) {
	srv := newTestServer(t, "")
	tests := map[string]struct {
		body      any
		expStatus int
		expError  string
	}{
		"unknown type": {
			body:      map[string]any{"type": "MINE_BITCOIN", "payload": map[string]any{}},
			expStatus: http.StatusUnprocessableEntity,
			expError:  "unknown action type",
		},
		"missing type": {
			body:      map[string]any{"payload": 3},
			expStatus: http.StatusBadRequest,
			expError:  "action type is required",
		},
		"bad payload": {
			body:      map[string]any{"type": "UPDATE_MORALE", "payload": "high"},
			expStatus: http.StatusBadRequest,
			expError:  "decode UPDATE_MORALE payload",
		},
		"project without payload": {
			body:      map[string]any{"type": "ADD_PROJECT"},
			expStatus: http.StatusBadRequest,
			expError:  "requiredPoints > 0",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/v1/actions", tt.body, nil)
			testutil.AssertEqual(t, "status", resp.StatusCode, tt.expStatus)
			body := decode[map[string]string](t, resp)
			if !bytes.Contains([]byte(body["error"]), []byte(tt.expError)) {
				t.Fatalf("error %q does not mention %q", body["error"], tt.expError)
			}
		})
	}
}

func TestDispatchBatch(t *testing.T) {
	srv := newTestServer(t, "")
	body := map[string]any{"actions": []game.Action{
		game.UpdateMorale(40),
		game.UnlockGenre("rpg"),
		{Type: "NOT_A_THING", Payload: game.RawPayload("{}")},
		game.UpdateMorale(90),
	}}
	resp := do(t, http.MethodPost, srv.URL+"/v1/actions/batch", body, nil)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusUnprocessableEntity)
	out := decode[map[string]any](t, resp)
	testutil.AssertEqual(t, "applied", out["applied"], 2.0)

	w := decode[game.World](t, do(t, http.MethodGet, srv.URL+"/v1/world", nil, nil))
	testutil.AssertEqual(t, "morale", w.Morale, 40.0)
}

func TestResetAndJournal(t *testing.T) {
	srv := newTestServer(t, "")
	do(t, http.MethodPost, srv.URL+"/v1/actions", game.AdjustMoney(-1000), nil)
	do(t, http.MethodPost, srv.URL+"/v1/actions", game.UnlockTechnology("3d"), nil)

	resp := do(t, http.MethodPost, srv.URL+"/v1/reset", nil, nil)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)
	w := decode[game.World](t, resp)
	if diff := cmp.Diff(game.DefaultWorld(), w); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}

	journal := decode[struct {
		Actions []game.Action `json:"actions"`
	}](t, do(t, http.MethodGet, srv.URL+"/v1/actions?since=1", nil, nil))
	testutil.AssertEqual(t, "journal length", len(journal.Actions), 2)
	testutil.AssertEqual(t, "last type", journal.Actions[1].Type, game.TypeResetGame)

	bad := do(t, http.MethodGet, srv.URL+"/v1/actions?since=-1", nil, nil)
	testutil.AssertEqual(t, "bad since", bad.StatusCode, http.StatusBadRequest)

	verify := decode[map[string]bool](t, do(t, http.MethodGet, srv.URL+"/v1/verify", nil, nil))
	testutil.AssertEqual(t, "consistent", verify["consistent"], true)
}

func TestPendingAchievementsAndCandidates(t *testing.T) {
	srv := newTestServer(t, "")
	do(t, http.MethodPost, srv.URL+"/v1/actions", game.BuyStock("ZENITH", 1, 75), nil)

	pending := decode[struct {
		Achievements []game.Achievement `json:"achievements"`
	}](t, do(t, http.MethodGet, srv.URL+"/v1/achievements/pending", nil, nil))
	testutil.AssertEqual(t, "pending", len(pending.Achievements), 1)
	testutil.AssertEqual(t, "id", pending.Achievements[0].ID, "investor")

	candidates := decode[struct {
		Candidates []game.Candidate `json:"candidates"`
	}](t, do(t, http.MethodGet, srv.URL+"/v1/candidates?n=3", nil, nil))
	if diff := cmp.Diff(game.Candidates(3), candidates.Candidates); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	bad := do(t, http.MethodGet, srv.URL+"/v1/candidates?n=0", nil, nil)
	testutil.AssertEqual(t, "bad n", bad.StatusCode, http.StatusBadRequest)
}

func TestStockLookup(t *testing.T) {
	srv := newTestServer(t, "")
	tests := map[string]struct {
		symbol    string
		expStatus int
	}{
		"listed":     {symbol: "nimbus", expStatus: http.StatusOK},
		"not listed": {symbol: "ABCDEF", expStatus: http.StatusNotFound},
		"malformed":  {symbol: "AB1", expStatus: http.StatusBadRequest},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp := do(t, http.MethodGet, srv.URL+"/v1/stocks/"+tt.symbol, nil, nil)
			testutil.AssertEqual(t, "status", resp.StatusCode, tt.expStatus)
		})
	}
}

func TestActionTypes(t *testing.T) {
	srv := newTestServer(t, "")
	out := decode[struct {
		Types []struct {
			Type    game.ActionType `json:"type"`
			Domains []string        `json:"domains"`
		} `json:"types"`
	}](t, do(t, http.MethodGet, srv.URL+"/v1/actions/types", nil, nil))
	testutil.AssertEqual(t, "count", len(out.Types), len(game.DefaultRouter().Types()))
}
