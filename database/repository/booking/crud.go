package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"spacebook/database"
	"spacebook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking document, assigning id and timestamps.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", database.Translate(err))
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", id, database.Translate(err))
	}
	return &booking, nil
}

// UpdateStatus sets a new status only if the stored one is still `from`.
func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, remark, updatedBy string, at time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":    to,
		"updatedBy": updatedBy,
		"updatedAt": at,
	}
	if remark != "" {
		set["adminRemark"] = remark
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "status": from}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if database.Translate(err) == database.ErrNotFound {
			return nil, database.ErrStateChanged
		}
		return nil, fmt.Errorf("error updating status of booking %s: %w", id, err)
	}
	return &updated, nil
}

// Reschedule writes the new interval and totals of an unpaid booking.
func (r *mongoBookingRepo) Reschedule(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":            booking.ID,
		"status":        expected,
		"paymentStatus": models.PaymentUnpaid,
	}
	update := bson.M{"$set": bson.M{
		"bookforFromDateTime": booking.BookForFrom,
		"bookforToDateTime":   booking.BookForTo,
		"duration":            booking.Duration,
		"durationText":        booking.DurationText,
		"totalAmount":         booking.TotalAmount,
		"remainingAmount":     booking.RemainingAmount,
		"updatedBy":           booking.UpdatedBy,
		"updatedAt":           booking.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error rescheduling booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrStateChanged
	}
	return nil
}
