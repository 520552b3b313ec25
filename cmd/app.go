package cmd

import (
	"context"

	"spacebook/config"
	"spacebook/cron"
	"spacebook/database/repository"
	"spacebook/handlers"
	"spacebook/middleware"
	"spacebook/services/booking"
	"spacebook/services/favorite"
	"spacebook/services/identity"
	"spacebook/services/lock"
	"spacebook/services/notification"
	"spacebook/services/payment"
	"spacebook/services/rating"
	"spacebook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// app holds the wired services shared by the subcommands.
type app struct {
	logger   *zap.Logger
	repos    *repository.Repositories
	notifier *notification.DefaultNotificationService
	queue    *asynq.Client
	inline   *notification.InlineDispatcher
}

// initFirebase is fatal only when Firebase verifies identities. Otherwise
// pushes are skipped and history is still recorded.
func initFirebase(logger *zap.Logger) {
	if err := utils.FirebaseInit(); err != nil {
		if config.AppConfig.AuthProvider != "jwt" {
			logger.Fatal("firebase initialization failed", zap.Error(err))
		}
		logger.Warn("firebase unavailable, push delivery disabled", zap.Error(err))
	}
}

func newNotifier(repos *repository.Repositories, logger *zap.Logger) *notification.DefaultNotificationService {
	svc, err := notification.NewDefaultNotificationService(
		repos.Users,
		repos.Notifications,
		notification.NewFCMGateway(utils.FCMClient),
		logger,
	)
	if err != nil {
		logger.Fatal("failed to build notification service", zap.Error(err))
	}
	return svc
}

func newIdentityResolver(repos *repository.Repositories, logger *zap.Logger) identity.Resolver {
	if config.AppConfig.AuthProvider == "jwt" {
		if config.AppConfig.JWTSecret == "" {
			logger.Fatal("AUTH_PROVIDER=jwt requires JWT_SECRET")
		}
		return identity.NewJWTResolver(config.AppConfig.JWTSecret)
	}
	return identity.NewFirebaseResolver(utils.AuthClient, repos.Users)
}

func (a *app) eventPublisher() booking.EventPublisher {
	if config.AppConfig.NotificationMode == "inline" {
		a.inline = notification.NewInlineDispatcher(a.notifier, a.logger)
		return a.inline
	}
	a.queue = asynq.NewClient(cron.QueueRedisOpt())
	return notification.NewQueueDispatcher(a.queue, a.logger)
}

func (a *app) locker() lock.Locker {
	if config.AppConfig.LockBackend == "local" {
		a.logger.Warn("booking locks are in-process, run a single API instance")
		return lock.NewLocalLocker()
	}
	return lock.NewRedisLocker(utils.GetLockClient(), utils.PropertyLockPrefix, config.AppConfig.BookingLockTTL, a.logger)
}

func (a *app) cardVerifier() booking.CardVerifier {
	if config.AppConfig.StripeKey == "" {
		return nil
	}
	return payment.NewStripeVerifier(config.AppConfig.StripeKey, config.AppConfig.PaymentCurrency, a.logger)
}

func (a *app) handlerBundle() *handlers.HandlerBundle {
	bookingSvc := booking.NewBookingService(
		a.repos,
		a.locker(),
		a.eventPublisher(),
		a.cardVerifier(),
		a.logger,
		config.BookingLocation(),
	)
	ratingSvc := rating.NewRatingService(a.repos, a.logger)
	favoriteSvc := favorite.NewFavoriteService(a.repos)

	return &handlers.HandlerBundle{
		Auth:          middleware.AuthMiddleware(newIdentityResolver(a.repos, a.logger), utils.GetAuthCacheClient(), a.logger),
		Bookings:      handlers.NewBookingHandler(bookingSvc, a.logger),
		Ratings:       handlers.NewRatingHandler(ratingSvc, a.logger),
		Favorites:     handlers.NewFavoriteHandler(favoriteSvc, a.logger),
		Notifications: handlers.NewNotificationHandler(a.notifier, a.logger),
		Health:        &handlers.HealthHandler{Status: utils.GetHealthStatus},
	}
}

// close drains in-flight notifications and releases queue connections.
func (a *app) close(_ context.Context) {
	if a.inline != nil {
		a.inline.Wait()
	}
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			a.logger.Warn("failed to close queue client", zap.Error(err))
		}
	}
}
