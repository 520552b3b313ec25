package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"spacebook/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingNotification = "notification:booking"
	NotificationQueue       = "notifications"
)

func NewBookingNotificationTask(ev models.BookingEvent) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingNotification, b)
	opts := []asynq.Option{
		asynq.Queue(NotificationQueue),
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseBookingNotificationTask decodes a task payload. Malformed payloads are
// marked so asynq does not retry them.
func ParseBookingNotificationTask(task *asynq.Task) (models.BookingEvent, error) {
	var ev models.BookingEvent
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		return ev, fmt.Errorf("invalid booking notification payload: %v: %w", err, asynq.SkipRetry)
	}
	return ev, nil
}
