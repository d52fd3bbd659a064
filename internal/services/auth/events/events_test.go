package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryBrokerDeliversToMatchingClient(t *testing.T) {
	t.Parallel()

	broker := NewMemoryBroker()
	var got []string
	unsubscribeA := broker.Subscribe("client-a", func(e Event) { got = append(got, "a1:"+string(e.Kind)) })
	broker.Subscribe("client-a", func(e Event) { got = append(got, "a2:"+string(e.Kind)) })
	broker.Subscribe("client-b", func(e Event) { got = append(got, "b:"+string(e.Kind)) })

	if err := broker.Publish(context.Background(), Event{Kind: KindSignedIn, ClientID: "client-a"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 2 || got[0] != "a1:signed_in" || got[1] != "a2:signed_in" {
		t.Fatalf("deliveries = %v", got)
	}

	unsubscribeA()
	unsubscribeA()
	got = nil
	if err := broker.Publish(context.Background(), Event{Kind: KindSignedOut, ClientID: "client-a"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 1 || got[0] != "a2:signed_out" {
		t.Fatalf("deliveries after unsubscribe = %v", got)
	}
}

func TestMemoryBrokerIgnoresEmptyClient(t *testing.T) {
	t.Parallel()

	broker := NewMemoryBroker()
	called := false
	broker.Subscribe("", func(Event) { called = true })
	broker.Subscribe("client-a", func(Event) { called = true })
	if err := broker.Publish(context.Background(), Event{Kind: KindSignedIn}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if called {
		t.Fatal("expected no delivery for empty client id")
	}
}

func TestMemoryBrokerPublishHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryBroker().Publish(ctx, Event{ClientID: "c"}); err == nil {
		t.Fatal("expected canceled context error")
	}
}

func TestEventAuthenticated(t *testing.T) {
	t.Parallel()

	if !(Event{Kind: KindSignedIn}).Authenticated() {
		t.Fatal("expected signed in to be authenticated")
	}
	if (Event{Kind: KindSignedOut}).Authenticated() {
		t.Fatal("expected signed out to be anonymous")
	}
}

func TestRedisBrokerNilClient(t *testing.T) {
	t.Parallel()

	broker := NewRedisBroker(nil, "")
	if broker.channel != DefaultChannel {
		t.Fatalf("channel = %q, want default", broker.channel)
	}
	if err := broker.Publish(context.Background(), Event{}); err == nil {
		t.Fatal("expected not configured error")
	}
}

func TestRedisBrokerRoundTrip(t *testing.T) {
	url := os.Getenv("TALENTHUB_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TALENTHUB_TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	broker := NewRedisBroker(client, "talenthub:test-auth-events")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan Event, 1)
	broker.Subscribe("client-a", func(e Event) {
		select {
		case received <- e:
		default:
		}
	})
	go func() { _ = broker.Run(ctx) }()

	deadline := time.After(4 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case e := <-received:
			if e.Kind != KindSignedIn || e.AccountID != "acct-1" {
				t.Fatalf("event = %+v", e)
			}
			return
		case <-tick.C:
			if err := broker.Publish(ctx, Event{Kind: KindSignedIn, AccountID: "acct-1", ClientID: "client-a"}); err != nil {
				t.Fatalf("publish: %v", err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}
