package common

import (
	"context"
	"encoding/json"
	"fmt"

	"apexleague/paddock/internal/models/dtos"

	"github.com/redis/go-redis/v9"
)

// Event stream names consumed by subscribers (Discord bot, web client).
const (
	EventStream           = "league_events"
	EventSessionCompleted = "session.completed"
	EventSessionOrphaned  = "session.orphaned"
)

// RedisNotifier publishes engine events to the shared event stream.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// SessionCompleted pushes a session.completed event with the imported rows.
func (n *RedisNotifier) SessionCompleted(ctx context.Context, evt dtos.SessionCompletedEvent) error {
	return n.publish(ctx, EventSessionCompleted, evt)
}

// SessionOrphaned pushes a session.orphaned event for admin review.
func (n *RedisNotifier) SessionOrphaned(ctx context.Context, evt dtos.OrphanedSessionEvent) error {
	return n.publish(ctx, EventSessionOrphaned, evt)
}

func (n *RedisNotifier) publish(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	args := &redis.XAddArgs{
		Stream: EventStream,
		MaxLen: 10000,
		Approx: true,
		Values: map[string]interface{}{
			"type": eventType,
			"data": string(data),
		},
	}
	if err := n.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}
