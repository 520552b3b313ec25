package models

import "time"

// NotificationType classifies a stored notification.
type NotificationType string

const (
	NotificationBookingRequest       NotificationType = "BOOKING_REQUEST"
	NotificationBookingStatusUpdate  NotificationType = "BOOKING_STATUS_UPDATE"
	NotificationBookingPaymentUpdate NotificationType = "BOOKING_PAYMENT_UPDATE"
	NotificationSystem               NotificationType = "SYSTEM"
)

// Notification is the stored history of a push sent to a user.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Type      NotificationType  `bson:"type" json:"type"`
	Title     string            `bson:"title" json:"title"`
	Body      string            `bson:"body" json:"body"`
	Data      map[string]string `bson:"data" json:"data"`
	Delivered bool              `bson:"delivered" json:"delivered"`
	Read      bool              `bson:"read" json:"read"`
	SentAt    time.Time         `bson:"sentAt" json:"sentAt"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}
