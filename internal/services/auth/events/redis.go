package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis channel auth events travel on.
const DefaultChannel = "talenthub:auth-events"

// RedisBroker publishes through Redis pub/sub so every web replica sees
// every event, and fans received events out to local subscribers.
type RedisBroker struct {
	client  *redis.Client
	channel string
	local   *MemoryBroker
}

// NewRedisBroker builds a broker on client. Run must be started to receive.
func NewRedisBroker(client *redis.Client, channel string) *RedisBroker {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroker{client: client, channel: channel, local: NewMemoryBroker()}
}

// Publish sends event to the Redis channel.
func (b *RedisBroker) Publish(ctx context.Context, event Event) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("redis broker is not configured")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode auth event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish auth event: %w", err)
	}
	return nil
}

// Subscribe registers fn for events of clientID received from Redis.
func (b *RedisBroker) Subscribe(clientID string, fn func(Event)) func() {
	return b.local.Subscribe(clientID, fn)
}

// Run receives events from Redis until ctx is done.
func (b *RedisBroker) Run(ctx context.Context) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("redis broker is not configured")
	}
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("auth events: decode payload failed: %v", err)
				continue
			}
			b.local.dispatch(event)
		}
	}
}

var _ Broker = (*RedisBroker)(nil)
