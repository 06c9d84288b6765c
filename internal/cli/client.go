package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

// APIError is a non-2xx answer from the studio API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

// Retryable reports whether err is worth queueing for a later attempt.
// Transport failures and 5xx answers are; rejections are not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return !errors.Is(err, context.Canceled)
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   strings.TrimSpace(token),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type BatchResult struct {
	Applied int        `json:"applied"`
	World   game.World `json:"world"`
}

type ActionType struct {
	Type    game.ActionType `json:"type"`
	Domains []string        `json:"domains"`
}

func (c *Client) World(ctx context.Context) (game.World, error) {
	var out game.World
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/world", nil, &out, "")
	return out, err
}

// Dispatch posts one action. A non-empty idem makes retries safe.
func (c *Client) Dispatch(ctx context.Context, a game.Action, idem string) (game.World, error) {
	var out game.World
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/actions", a, &out, idem)
	return out, err
}

func (c *Client) DispatchBatch(ctx context.Context, actions []game.Action) (BatchResult, error) {
	var out BatchResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/actions/batch", map[string]any{
		"actions": actions,
	}, &out, "")
	return out, err
}

func (c *Client) Reset(ctx context.Context) (game.World, error) {
	var out game.World
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/reset", map[string]any{}, &out, "")
	return out, err
}

func (c *Client) Actions(ctx context.Context, since int) ([]game.Action, error) {
	path := "/v1/actions"
	if since > 0 {
		path += "?since=" + strconv.Itoa(since)
	}
	var out struct {
		Actions []game.Action `json:"actions"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, path, nil, &out, "")
	return out.Actions, err
}

func (c *Client) ActionTypes(ctx context.Context) ([]ActionType, error) {
	var out struct {
		Types []ActionType `json:"types"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/actions/types", nil, &out, "")
	return out.Types, err
}

func (c *Client) PendingAchievements(ctx context.Context) ([]game.Achievement, error) {
	var out struct {
		Achievements []game.Achievement `json:"achievements"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/achievements/pending", nil, &out, "")
	return out.Achievements, err
}

func (c *Client) Candidates(ctx context.Context, n int) ([]game.Candidate, error) {
	var out struct {
		Candidates []game.Candidate `json:"candidates"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/candidates?n="+strconv.Itoa(n), nil, &out, "")
	return out.Candidates, err
}

func (c *Client) Stock(ctx context.Context, symbol string) (game.Stock, error) {
	var out game.Stock
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/stocks/"+url.PathEscape(symbol), nil, &out, "")
	return out, err
}

// Verify asks the server to rebuild the World from its journal and compare
// it with the live snapshot.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	var out struct {
		Consistent bool `json:"consistent"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/verify", nil, &out, "")
	return out.Consistent, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any, idem string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if idem != "" {
		req.Header.Set("Idempotency-Key", idem)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func errorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
