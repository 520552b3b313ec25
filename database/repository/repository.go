package repository

import (
	"context"

	bookingRepo "spacebook/database/repository/booking"
	favoriteRepo "spacebook/database/repository/favorite"
	notificationRepo "spacebook/database/repository/notification"
	propertyRepo "spacebook/database/repository/property"
	ratingRepo "spacebook/database/repository/rating"
	transactionRepo "spacebook/database/repository/transaction"
	userRepo "spacebook/database/repository/user"
)

type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

type PropertyRepository = propertyRepo.PropertyRepository

var NewMongoPropertyRepo = propertyRepo.NewMongoPropertyRepo

type TransactionRepository = transactionRepo.TransactionRepository

var NewMongoTransactionRepo = transactionRepo.NewMongoTransactionRepo

type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo

type NotificationRepository = notificationRepo.NotificationRepository

var NewMongoNotificationRepo = notificationRepo.NewMongoNotificationRepo

type FavoriteRepository = favoriteRepo.FavoriteRepository

var NewMongoFavoriteRepo = favoriteRepo.NewMongoFavoriteRepo

type RatingRepository = ratingRepo.RatingRepository

var NewMongoRatingRepo = ratingRepo.NewMongoRatingRepo

// Repositories bundles every Mongo-backed store used by the services.
type Repositories struct {
	Bookings      BookingRepository
	Properties    PropertyRepository
	Transactions  TransactionRepository
	Users         UserRepository
	Notifications NotificationRepository
	Favorites     FavoriteRepository
	Ratings       RatingRepository
}

// NewMongoRepositories builds all repositories on the connected database.
func NewMongoRepositories() *Repositories {
	return &Repositories{
		Bookings:      NewMongoBookingRepo(),
		Properties:    NewMongoPropertyRepo(),
		Transactions:  NewMongoTransactionRepo(),
		Users:         NewMongoUserRepository(),
		Notifications: NewMongoNotificationRepo(),
		Favorites:     NewMongoFavoriteRepo(),
		Ratings:       NewMongoRatingRepo(),
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every collection, stopping at the first failure.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for _, ix := range []indexer{r.Bookings, r.Properties, r.Users, r.Notifications, r.Favorites, r.Ratings} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
