package workers

import (
	"context"
	"time"

	"apexleague/paddock/internal/common"
	"apexleague/paddock/internal/services"
)

type WorkersContainer struct {
	ImportQueue *ImportQueueWorker
	Monitor     *QueueMonitor
}

func InitWorkers(
	redQ *common.RedisQueueService,
	importer *services.ImportService,
) *WorkersContainer {
	qWorker := NewImportQueueWorker("import", redQ, importer)
	monitor := NewQueueMonitor(redQ)

	go func() { _ = qWorker.Start(context.Background(), 3) }()
	go monitor.Start(context.Background(), 30*time.Second)

	return &WorkersContainer{
		ImportQueue: qWorker,
		Monitor:     monitor,
	}
}
