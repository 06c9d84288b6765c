// Package notify relays new notifications and unlocked achievements to
// subscribers outside the process.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/nats-io/nats.go"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

const (
	KindNotification = "notification"
	KindAchievement  = "achievement"
)

type Event struct {
	Kind         string             `json:"kind"`
	Notification *game.Notification `json:"notification,omitempty"`
	Achievement  *game.Achievement  `json:"achievement,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close()
}

// Diff lists what after gained over before: notifications by id, then
// achievements by id.
func Diff(before, after game.World) []Event {
	var out []Event
	for _, n := range after.Notifications {
		if !slices.ContainsFunc(before.Notifications, func(x game.Notification) bool { return x.ID == n.ID }) {
			out = append(out, Event{Kind: KindNotification, Notification: &n})
		}
	}
	for _, a := range after.Achievements {
		if !before.HasAchievement(a.ID) {
			out = append(out, Event{Kind: KindAchievement, Achievement: &a})
		}
	}
	return out
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close()                               {}

// NatsPublisher publishes events as JSON on <prefix>.<kind>.
type NatsPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNatsPublisher connects to url. prefix is usually "studio.<slot>".
func NewNatsPublisher(url, prefix string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("studio-api"))
	if err != nil {
		return nil, fmt.Errorf("creating nats client connection: %w", err)
	}
	return &NatsPublisher{conn: conn, prefix: prefix}, nil
}

func (p *NatsPublisher) Subject(kind string) string {
	return p.prefix + "." + kind
}

func (p *NatsPublisher) Publish(ctx context.Context, evt Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	return p.conn.Publish(p.Subject(evt.Kind), data)
}

// Flush waits until the server has seen every published message.
func (p *NatsPublisher) Flush() error {
	return p.conn.Flush()
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}
