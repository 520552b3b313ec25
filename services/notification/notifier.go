package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacebook/database"
	"spacebook/database/repository"
	"spacebook/models"

	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	users   repository.UserRepository
	history repository.NotificationRepository
	gateway Gateway
	logger  *zap.Logger
}

func NewDefaultNotificationService(
	users repository.UserRepository,
	history repository.NotificationRepository,
	gateway Gateway,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if users == nil || history == nil || gateway == nil {
		return nil, fmt.Errorf("notification service initialization error: missing dependency")
	}
	return &DefaultNotificationService{
		users:   users,
		history: history,
		gateway: gateway,
		logger:  logger,
	}, nil
}

func (s *DefaultNotificationService) SendToUser(ctx context.Context, uid, title, body string, data map[string]string) SendResult {
	if uid == "" {
		return SendResult{Error: "missing recipient"}
	}
	u, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return SendResult{Error: "user not found or no FCM token"}
		}
		s.logger.Warn("SendToUser: user lookup failed", zap.String("uid", uid), zap.Error(err))
		return SendResult{Error: err.Error()}
	}
	if u.FCMToken == "" {
		return SendResult{Error: "user not found or no FCM token"}
	}

	err = s.gateway.Send(ctx, u.FCMToken, Message{Title: title, Body: body, Data: data})
	if err != nil {
		if errors.Is(err, ErrUnregistered) {
			if cerr := s.users.ClearFCMToken(ctx, uid, u.FCMToken); cerr != nil {
				s.logger.Warn("SendToUser: failed to clear stale token", zap.String("uid", uid), zap.Error(cerr))
			} else {
				s.logger.Info("Removed invalid FCM token", zap.String("uid", uid))
			}
		}
		s.logger.Warn("SendToUser: delivery failed", zap.String("uid", uid), zap.Error(err))
		return SendResult{Error: err.Error()}
	}
	return SendResult{Success: true}
}

// HandleEvent sends the push for ev and stores it in the recipient's history.
// Delivery and history failures are logged, never returned.
func (s *DefaultNotificationService) HandleEvent(ctx context.Context, ev models.BookingEvent) error {
	out, ok := compose(ev)
	if !ok || out.recipient == "" {
		return nil
	}

	res := s.SendToUser(ctx, out.recipient, out.title, out.body, out.data)

	now := time.Now()
	record := &models.Notification{
		UserID:    out.recipient,
		Type:      out.kind,
		Title:     out.title,
		Body:      out.body,
		Data:      out.data,
		Delivered: res.Success,
		SentAt:    now,
	}
	if err := s.history.Save(ctx, record); err != nil {
		s.logger.Error("Failed to save notification history",
			zap.String("bookingId", ev.BookingID), zap.Error(err))
	}
	return nil
}

func (s *DefaultNotificationService) RegisterToken(ctx context.Context, caller models.Caller, token string) error {
	if token == "" {
		return fmt.Errorf("fcm token is required")
	}
	return s.users.UpsertFCMToken(ctx, caller, token)
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, uid string, limit int64) ([]models.Notification, error) {
	return s.history.ListByUser(ctx, uid, limit)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, uid, id string) error {
	return s.history.MarkRead(ctx, id, uid)
}
