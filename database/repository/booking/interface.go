package bookingRepo

import (
	"context"
	"time"

	"spacebook/database"
	"spacebook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the interval store for bookings and their payment ledger.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ExistsOverlap reports whether an active booking on the property intersects [from, to).
	// excludeID, when non-empty, is left out of the check.
	ExistsOverlap(ctx context.Context, propertyID string, from, to time.Time, excludeID string) (bool, error)
	// FindActiveOverlapping returns every active booking on the property intersecting [from, to).
	FindActiveOverlapping(ctx context.Context, propertyID string, from, to time.Time) ([]models.Booking, error)
	// UpdateStatus moves a booking from one status to another. It returns
	// database.ErrStateChanged when the stored status is no longer `from`.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, remark, updatedBy string, at time.Time) (*models.Booking, error)
	// Reschedule replaces the interval and price of a booking that is still in
	// `expected` status and unpaid.
	Reschedule(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error
	// ApplyPayment persists the payment fields of booking and appends txn in one
	// transaction, provided the stored payment status is still `expected`.
	ApplyPayment(ctx context.Context, booking *models.Booking, expected models.PaymentStatus, txn *models.Transaction) error
	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll    *mongo.Collection
	txnColl *mongo.Collection
}

// NewMongoBookingRepo constructs a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		coll:    db.Collection("bookings"),
		txnColl: db.Collection("transactions"),
	}
}
