package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"formforge-api/internal/model"
	"formforge-api/internal/repository"
)

const flushTimeout = 5 * time.Second

// EventWorker buffers event log appends and flushes them in batches, so the
// tracking endpoint never waits on ClickHouse.
type EventWorker interface {
	// Enqueue hands an event to the worker without blocking. It returns
	// false when the buffer is saturated and the event was dropped.
	Enqueue(event model.InteractionEvent) bool

	// Shutdown stops intake, drains the buffer and flushes what remains.
	Shutdown()
}

type batchEventWorker struct {
	repo          repository.EventRepository
	log           *zap.Logger
	queue         chan model.InteractionEvent
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
	once          sync.Once
}

// NewBatchEventWorker starts a background worker that appends events to the
// event log when the batch fills or the flush interval elapses.
func NewBatchEventWorker(repo repository.EventRepository, log *zap.Logger, bufferSize, batchSize int, flushInterval time.Duration) EventWorker {
	w := &batchEventWorker{
		repo:          repo,
		log:           log,
		queue:         make(chan model.InteractionEvent, bufferSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *batchEventWorker) Enqueue(event model.InteractionEvent) bool {
	select {
	case w.queue <- event:
		return true
	default:
		return false
	}
}

func (w *batchEventWorker) Shutdown() {
	w.once.Do(func() {
		close(w.queue)
	})
	w.wg.Wait()
}

func (w *batchEventWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	batch := make([]model.InteractionEvent, 0, w.batchSize)

	for {
		select {
		case event, ok := <-w.queue:
			if !ok {
				if len(batch) > 0 {
					w.flush(batch)
				}
				return
			}
			batch = append(batch, event)
			if len(batch) >= w.batchSize {
				w.flush(batch)
				batch = make([]model.InteractionEvent, 0, w.batchSize)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(batch)
				batch = make([]model.InteractionEvent, 0, w.batchSize)
			}
		}
	}
}

// flush writes a batch with its own context: a flush in progress should
// finish even when the server is shutting down.
func (w *batchEventWorker) flush(batch []model.InteractionEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := w.repo.CreateBatch(ctx, batch); err != nil {
		w.log.Error("event log flush failed",
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		return
	}

	w.log.Debug("event log flushed", zap.Int("batch_size", len(batch)))
}
