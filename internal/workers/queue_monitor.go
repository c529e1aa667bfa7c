package workers

import (
	"context"
	"log"
	"time"

	"apexleague/paddock/internal/common"
	"apexleague/paddock/internal/logging"
)

// QueueMonitor periodically logs the import queue depth so a stuck
// consumer group is visible before results go missing.
type QueueMonitor struct {
	redisQueue *common.RedisQueueService
}

func NewQueueMonitor(redisQueue *common.RedisQueueService) *QueueMonitor {
	return &QueueMonitor{redisQueue: redisQueue}
}

// Start polls until the context is cancelled.
func (m *QueueMonitor) Start(ctx context.Context, interval time.Duration) {
	log.Printf("[QueueMonitor] Starting with interval %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[QueueMonitor] Shutting down")
			return
		case <-ticker.C:
			length, pending, err := m.redisQueue.QueueDepth(ctx, SessionImportStream, importConsumerGroup)
			if err != nil {
				log.Printf("[QueueMonitor] Failed to read queue depth: %v", err)
				continue
			}
			if pending > 0 || length > 100 {
				logging.Warn("Import queue backlog",
					"stream", SessionImportStream,
					"length", length,
					"pending", pending,
				)
			}
		}
	}
}
