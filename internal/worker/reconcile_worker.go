package worker

import (
	"context"

	"bus-ticketing-backend/internal/queue"
	"bus-ticketing-backend/internal/service"
	"bus-ticketing-backend/pkg/logger"

	"go.uber.org/zap"
)

type ReconcileWorker interface {
	// 訂閱重算請求隊列
	Start(ctx context.Context) error
}

type ReconcileWorkerImpl struct {
	service service.InventoryService
	queue   queue.ReconcileQueue
}

func NewReconcileWorker(service service.InventoryService, queue queue.ReconcileQueue) ReconcileWorker {
	return &ReconcileWorkerImpl{
		service: service,
		queue:   queue,
	}
}

func (w *ReconcileWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeJobs(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			result, err := w.service.Reconcile(ctx, msg.Data.VoyageID)
			if err != nil {
				// 資料庫暫時連不上等暫態錯誤：留給隊列重試
				logger.WithComponent("worker").Warn("reconcile failed, will retry",
					zap.Int("voyage_id", msg.Data.VoyageID),
					zap.String("reason", msg.Data.Reason),
					zap.Error(err))
				msg.Nack(true)
				continue
			}

			if result.Drift != 0 {
				logger.WithComponent("worker").Info("reconcile corrected drift",
					zap.Int("voyage_id", msg.Data.VoyageID),
					zap.Int("drift", result.Drift))
			}
			msg.Ack()
		}
	}()
	return nil
}
