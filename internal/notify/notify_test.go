package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-testutil"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

func startNats(t *testing.T) *server.Server {
	t.Helper()
	ns, err := server.NewServer(&server.Options{
		Host:   "127.0.0.1",
		Port:   -1,
		NoSigs: true,
		NoLog:  true,
	})
	if err != nil {
		t.Fatalf("new nats server: %v", err)
	}
	ns.Start()
	if !ns.ReadyForConnections(10 * time.Second) {
		t.Fatal("nats server not ready for connections")
	}
	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})
	return ns
}

func TestDiff(t *testing.T) {
	before := game.DefaultWorld()
	before = game.Reduce(before, game.AddNotification(game.Notification{ID: "old"}))

	after := game.Reduce(before, game.AddNotification(game.Notification{ID: "new", Title: "Hi"}))
	after = game.Reduce(after, game.UnlockAchievement(game.Achievement{ID: "investor"}))

	events := Diff(before, after)
	testutil.AssertEqual(t, "events", len(events), 2)
	testutil.AssertEqual(t, "first kind", events[0].Kind, KindNotification)
	testutil.AssertEqual(t, "first id", events[0].Notification.ID, "new")
	testutil.AssertEqual(t, "second kind", events[1].Kind, KindAchievement)
	testutil.AssertEqual(t, "second id", events[1].Achievement.ID, "investor")

	testutil.AssertEqual(t, "no change", len(Diff(after, after)), 0)
}

func TestNatsPublisher(t *testing.T) {
	ns := startNats(t)

	sub, err := nats.Connect(ns.ClientURL())
	if err != nil {
		t.Fatalf("connect subscriber: %v", err)
	}
	t.Cleanup(sub.Close)
	msgs := make(chan *nats.Msg, 4)
	if _, err := sub.ChanSubscribe("studio.test.>", msgs); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := sub.Flush(); err != nil {
		t.Fatalf("flush subscriber: %v", err)
	}

	pub, err := NewNatsPublisher(ns.ClientURL(), "studio.test")
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	t.Cleanup(pub.Close)

	n := game.Notification{ID: "n1", Title: "Shipped"}
	err = pub.Publish(context.Background(), Event{Kind: KindNotification, Notification: &n})
	testutil.AssertEqual(t, "publish error", err, nil)
	testutil.AssertEqual(t, "flush error", pub.Flush(), nil)

	select {
	case msg := <-msgs:
		testutil.AssertEqual(t, "subject", msg.Subject, "studio.test.notification")
		var evt Event
		testutil.AssertEqual(t, "unmarshal error", json.Unmarshal(msg.Data, &evt), nil)
		testutil.AssertEqual(t, "title", evt.Notification.Title, "Shipped")
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}

func TestPublishCancelled(t *testing.T) {
	ns := startNats(t)
	pub, err := NewNatsPublisher(ns.ClientURL(), "studio.test")
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	t.Cleanup(pub.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	testutil.AssertErrorContains(t, pub.Publish(ctx, Event{Kind: KindAchievement}), "context canceled")
}
