package common

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"apexleague/paddock/internal/models/dtos"

	"github.com/redis/go-redis/v9"
)

// RedisQueueService carries session payloads from the telemetry and
// file-import collaborators to the import worker, using Redis Streams.
type RedisQueueService struct {
	client *redis.Client
}

// NewRedisQueueService creates a new Redis queue service
func NewRedisQueueService(client *redis.Client) *RedisQueueService {
	return &RedisQueueService{
		client: client,
	}
}

// SessionQueueItem is one queued session payload awaiting import.
type SessionQueueItem struct {
	Payload    dtos.SessionPayload `json:"payload"`
	RaceID     *string             `json:"race_id,omitempty"`
	Source     string              `json:"source"`
	EnqueuedAt time.Time           `json:"enqueued_at"`
}

// EnqueueSession adds a session payload to the import queue.
func (s *RedisQueueService) EnqueueSession(ctx context.Context, streamName string, item *SessionQueueItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal session item: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	_, err = s.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}

	return nil
}

// DequeueSession reads one payload from the queue via a consumer group.
// Returns (item, messageID, error); a nil item means the block timed out.
func (s *RedisQueueService) DequeueSession(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*SessionQueueItem, string, error) {
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"}, // ">" means new messages only
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]

	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, msg.ID, fmt.Errorf("message %s has no data field", msg.ID)
	}

	var item SessionQueueItem
	if err := json.Unmarshal([]byte(dataStr), &item); err != nil {
		return nil, msg.ID, fmt.Errorf("failed to unmarshal message %s: %w", msg.ID, err)
	}

	return &item, msg.ID, nil
}

// AckMessage acknowledges a processed message.
func (s *RedisQueueService) AckMessage(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// EnsureConsumerGroup creates the consumer group if it does not exist yet.
func (s *RedisQueueService) EnsureConsumerGroup(ctx context.Context, streamName, groupName string) error {
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

// QueueDepth returns the stream length and the number of pending messages.
func (s *RedisQueueService) QueueDepth(ctx context.Context, streamName, groupName string) (int64, int64, error) {
	length, err := s.client.XLen(ctx, streamName).Result()
	if err != nil {
		return 0, 0, err
	}
	pending, err := s.client.XPending(ctx, streamName, groupName).Result()
	if err != nil {
		if err == redis.Nil {
			return length, 0, nil
		}
		log.Printf("[RedisQueue] Warning: failed to read pending for %s: %v", streamName, err)
		return length, 0, nil
	}
	return length, pending.Count, nil
}
