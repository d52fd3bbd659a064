// Package events carries sign-in and sign-out notifications to the live pages
// of the browser that caused them.
package events

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// Kind names an auth state change.
type Kind string

const (
	KindSignedIn  Kind = "signed_in"
	KindSignedOut Kind = "signed_out"
)

// Event is one auth state change. ClientID identifies the browser that
// signed in or out.
type Event struct {
	Kind      Kind      `json:"kind"`
	AccountID string    `json:"account_id"`
	SessionID string    `json:"session_id"`
	ClientID  string    `json:"client_id"`
	At        time.Time `json:"at"`
}

// Authenticated reports whether the event leaves the client signed in.
func (e Event) Authenticated() bool {
	return e.Kind == KindSignedIn
}

// Broker publishes auth events and delivers them to subscribers of the
// matching client id.
type Broker interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe registers fn for events of clientID and returns a function
	// that removes the registration.
	Subscribe(clientID string, fn func(Event)) (unsubscribe func())
}

type subscription struct {
	clientID string
	fn       func(Event)
}

// MemoryBroker delivers events in-process.
type MemoryBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscription
}

// NewMemoryBroker builds an empty in-process broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]subscription)}
}

// Publish delivers event synchronously to every matching subscriber.
func (b *MemoryBroker) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.dispatch(event)
	return nil
}

func (b *MemoryBroker) dispatch(event Event) {
	clientID := strings.TrimSpace(event.ClientID)
	if clientID == "" {
		return
	}
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id, sub := range b.subs {
		if sub.clientID == clientID {
			ids = append(ids, id)
		}
	}
	handlers := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, b.subs[id].fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(event)
	}
}

// Subscribe registers fn for clientID. Empty client ids never match.
func (b *MemoryBroker) Subscribe(clientID string, fn func(Event)) func() {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = subscription{clientID: clientID, fn: fn}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

var _ Broker = (*MemoryBroker)(nil)
