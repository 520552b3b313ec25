package notification

import (
	"context"
	"sync"
	"time"

	"spacebook/models"
	"spacebook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// EventHandler consumes booking events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event models.BookingEvent) error
}

// InlineDispatcher delivers each event on its own goroutine, detached from the
// request that produced it.
type InlineDispatcher struct {
	handler EventHandler
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewInlineDispatcher(handler EventHandler, logger *zap.Logger) *InlineDispatcher {
	return &InlineDispatcher{handler: handler, logger: logger, timeout: 30 * time.Second}
}

func (d *InlineDispatcher) Publish(_ context.Context, ev models.BookingEvent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Notification handler panicked", zap.Any("panic", r), zap.String("bookingId", ev.BookingID))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.handler.HandleEvent(ctx, ev); err != nil {
			d.logger.Warn("Notification handling failed", zap.String("bookingId", ev.BookingID), zap.Error(err))
		}
	}()
}

// Wait blocks until every published event has been handled.
func (d *InlineDispatcher) Wait() {
	d.wg.Wait()
}

// Enqueuer is the subset of *asynq.Client used by QueueDispatcher.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher hands events to the asynq worker.
type QueueDispatcher struct {
	client Enqueuer
	logger *zap.Logger
}

func NewQueueDispatcher(client Enqueuer, logger *zap.Logger) *QueueDispatcher {
	return &QueueDispatcher{client: client, logger: logger}
}

func (d *QueueDispatcher) Publish(ctx context.Context, ev models.BookingEvent) {
	task, opts, err := tasks.NewBookingNotificationTask(ev)
	if err != nil {
		d.logger.Error("Failed to build notification task", zap.String("bookingId", ev.BookingID), zap.Error(err))
		return
	}
	// Enqueue must not be cut short by the request finishing.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	info, err := d.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		d.logger.Error("Failed to enqueue notification", zap.String("bookingId", ev.BookingID), zap.Error(err))
		return
	}
	d.logger.Debug("Notification enqueued", zap.String("taskId", info.ID), zap.String("bookingId", ev.BookingID))
}
