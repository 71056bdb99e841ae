package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"petcare/models"

	"github.com/go-redis/redis/v8"
)

// Publisher is the part of a redis client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier publishes events as JSON on a pub/sub channel. Subscribers
// that are not connected miss the event.
type RedisNotifier struct {
	client  Publisher
	channel string
}

func NewRedisNotifier(client Publisher, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) Publish(ctx context.Context, event models.BookingEvent) error {
	if n.client == nil {
		return fmt.Errorf("redis notifier: no client configured")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis notifier: encode %s: %w", event.Type, err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis notifier: publish %s on %s: %w", event.Type, n.channel, err)
	}
	return nil
}
