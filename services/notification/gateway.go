package notification

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// ErrUnregistered means the device token should be forgotten.
var ErrUnregistered = errors.New("device token is not registered")

// Message is the transport-neutral push payload.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Gateway sends a push to one device token.
type Gateway interface {
	Send(ctx context.Context, token string, msg Message) error
}

// FCMGateway delivers through Firebase Cloud Messaging.
type FCMGateway struct {
	client *messaging.Client
}

func NewFCMGateway(client *messaging.Client) *FCMGateway {
	return &FCMGateway{client: client}
}

func (g *FCMGateway) Send(ctx context.Context, token string, msg Message) error {
	if g.client == nil {
		return errors.New("fcm client not initialized")
	}

	data := make(map[string]string, len(msg.Data)+2)
	for k, v := range msg.Data {
		data[k] = v
	}
	data["click_action"] = "FLUTTER_NOTIFICATION_CLICK"
	data["sound"] = "default"

	badge := 1
	m := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "booking_alerts",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	}

	if _, err := g.client.Send(ctx, m); err != nil {
		if messaging.IsUnregistered(err) {
			return fmt.Errorf("%w: %v", ErrUnregistered, err)
		}
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
