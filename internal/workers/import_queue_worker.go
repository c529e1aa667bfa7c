package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"apexleague/paddock/internal/common"
	"apexleague/paddock/internal/services"

	"golang.org/x/sync/errgroup"
)

const (
	SessionImportStream = "session_import"
	importConsumerGroup = "paddock-importers"
)

// ImportQueueWorker drains session payloads pushed to the Redis stream by
// the telemetry and file-import collaborators and hands them to the
// importer. Orphaned and duplicate payloads are acked like successes; the
// engine has already parked or rejected them and a redelivery would not
// change the outcome.
type ImportQueueWorker struct {
	workerID   string
	redisQueue *common.RedisQueueService
	importer   *services.ImportService
}

// NewImportQueueWorker creates a new import queue worker
func NewImportQueueWorker(workerID string, redisQueue *common.RedisQueueService, importer *services.ImportService) *ImportQueueWorker {
	return &ImportQueueWorker{
		workerID:   workerID,
		redisQueue: redisQueue,
		importer:   importer,
	}
}

// Start runs numWorkers consumers until the context is cancelled.
func (w *ImportQueueWorker) Start(ctx context.Context, numWorkers int) error {
	log.Printf("[ImportQueueWorker] Starting %d workers with ID prefix: %s", numWorkers, w.workerID)

	if err := w.redisQueue.EnsureConsumerGroup(ctx, SessionImportStream, importConsumerGroup); err != nil {
		log.Printf("[ImportQueueWorker] Warning - failed to create consumer group: %v", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		workerName := fmt.Sprintf("%s-worker-%d", w.workerID, i)
		g.Go(func() error {
			w.processQueue(ctx, workerName)
			return nil
		})
	}
	err := g.Wait()
	log.Printf("[ImportQueueWorker] All workers stopped")
	return err
}

func (w *ImportQueueWorker) processQueue(ctx context.Context, workerName string) {
	log.Printf("[%s] Started processing queue: %s", workerName, SessionImportStream)

	processedCount := 0
	errorCount := 0

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Shutting down. Processed: %d, Errors: %d", workerName, processedCount, errorCount)
			return
		default:
			item, messageID, err := w.redisQueue.DequeueSession(ctx, SessionImportStream, importConsumerGroup, workerName, 5*time.Second)
			if err != nil {
				log.Printf("[%s] Dequeue error: %v", workerName, err)
				errorCount++
				continue
			}
			if item == nil {
				// Block timed out, nothing queued
				continue
			}

			_, err = w.importer.ImportSession(ctx, item.Payload, item.RaceID)
			switch {
			case err == nil:
				processedCount++
			case errors.Is(err, services.ErrResolutionFailed):
				// Already parked with the orphan handler
				processedCount++
			case services.IsConflict(err):
				log.Printf("[%s] Duplicate session dropped: %v", workerName, err)
				processedCount++
			default:
				// Leave the message pending for a redelivery
				log.Printf("[%s] Import failed for message %s: %v", workerName, messageID, err)
				errorCount++
				continue
			}

			if err := w.redisQueue.AckMessage(ctx, SessionImportStream, importConsumerGroup, messageID); err != nil {
				log.Printf("[%s] Failed to ack message %s: %v", workerName, messageID, err)
			}
		}
	}
}
