package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"spacebook/database"
	"spacebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplyPayment updates the booking's payment fields and inserts the ledger entry
// inside a single MongoDB transaction.
func (r *mongoBookingRepo) ApplyPayment(ctx context.Context, booking *models.Booking, expected models.PaymentStatus, txn *models.Transaction) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": booking.ID, "paymentStatus": expected}
		update := bson.M{"$set": bson.M{
			"paymentStatus":   booking.PaymentStatus,
			"paymentMode":     booking.PaymentMode,
			"paymentDateTime": booking.PaymentDateTime,
			"remainingAmount": booking.RemainingAmount,
			"updatedBy":       booking.UpdatedBy,
			"updatedAt":       booking.UpdatedAt,
		}}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("update booking payment failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return database.ErrStateChanged
		}

		if _, err := r.txnColl.InsertOne(sc, txn); err != nil {
			if errors.Is(database.Translate(err), database.ErrDuplicate) {
				return database.ErrDuplicate
			}
			return fmt.Errorf("insert transaction failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, database.ErrStateChanged) || errors.Is(err, database.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("payment transaction failed: %w", err)
	}
	return nil
}
