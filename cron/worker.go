package cron

import (
	"context"
	"time"

	"spacebook/config"
	"spacebook/services/notification"
	"spacebook/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the API (client) and worker (server).
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewNotificationWorker builds the asynq server and mux for booking notifications.
func NewNotificationWorker(handler notification.EventHandler, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.NotificationQueue: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingNotification, handleBookingNotification(handler, logger))
	return srv, mux
}

// RunNotificationWorker blocks serving the queue, retrying startup with backoff,
// until ctx is cancelled.
func RunNotificationWorker(ctx context.Context, handler notification.EventHandler, logger *zap.Logger) error {
	srv, mux := NewNotificationWorker(handler, logger)

	go monitorRedisConnection(ctx, logger)

	const maxAttempts = 5
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		logger.Info("Starting notification worker", zap.Int("attempt", attempts))
		if err = srv.Start(mux); err == nil {
			break
		}
		logger.Error("Failed to start notification worker",
			zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempts*2) * time.Second):
		}
	}
	if err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("Shutting down notification worker")
	srv.Shutdown()
	return nil
}

func handleBookingNotification(handler notification.EventHandler, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ev, err := tasks.ParseBookingNotificationTask(task)
		if err != nil {
			logger.Error("Invalid notification payload", zap.Error(err))
			return err
		}
		logger.Debug("Handling booking notification",
			zap.String("type", string(ev.Type)), zap.String("bookingId", ev.BookingID))
		return handler.HandleEvent(ctx, ev)
	}
}

// monitorRedisConnection pings the queue Redis periodically to surface outages.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
