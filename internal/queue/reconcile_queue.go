package queue

import (
	"context"
	"time"
)

// ReconcileJob 重算請求：針對單一班次，由座位狀態重新計算 available_seats。
// 在快取更新失敗或偵測到一致性錯誤時排入。
type ReconcileJob struct {
	VoyageID    int       `json:"voyage_id"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

type Delivery struct {
	Data *ReconcileJob
	Ack  func()
	Nack func(requeue bool)
}

type ReconcileQueue interface {
	// 發送重算請求到隊列
	PublishJob(ctx context.Context, job *ReconcileJob) error
	// 訂閱重算請求隊列
	SubscribeJobs(ctx context.Context) (<-chan Delivery, error)
}

type ReconcileQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *ReconcileJob
}

func NewReconcileQueue(bufferSize int) ReconcileQueue {
	return &ReconcileQueueImpl{
		ch: make(chan *ReconcileJob, bufferSize),
	}
}

func (q *ReconcileQueueImpl) PublishJob(ctx context.Context, job *ReconcileJob) error {
	q.ch <- job
	return nil
}

func (q *ReconcileQueueImpl) SubscribeJobs(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case job, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: job,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- job // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
