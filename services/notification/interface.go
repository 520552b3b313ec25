package notification

import (
	"context"

	"spacebook/models"
)

// NotificationService delivers pushes to users and keeps their history.
type NotificationService interface {
	// SendToUser pushes a message to the user's registered device. It never
	// returns an error; the outcome is reported in the result.
	SendToUser(ctx context.Context, uid, title, body string, data map[string]string) SendResult
	// HandleEvent turns a booking lifecycle event into a notification.
	HandleEvent(ctx context.Context, event models.BookingEvent) error

	RegisterToken(ctx context.Context, caller models.Caller, token string) error
	ListForUser(ctx context.Context, uid string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, uid, id string) error
}

// SendResult reports a best-effort delivery.
type SendResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
