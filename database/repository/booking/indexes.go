package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes used by the overlap and ownership queries.
func (r *mongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "propertyId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "bookforFromDateTime", Value: 1},
				{Key: "bookforToDateTime", Value: 1},
			},
			Options: options.Index().SetName("property_status_interval_idx"),
		},
		{
			Keys:    bson.D{{Key: "vendorId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("vendor_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "uid", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("uid_status_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	txnIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("booking_created_idx"),
		},
		{
			// A card reference proves one settlement and can back one ledger entry.
			Keys: bson.D{{Key: "referenceNumber", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"paymentMode": "card"}).
				SetName("unique_card_reference"),
		},
	}
	if _, err := r.txnColl.Indexes().CreateMany(ctx, txnIndexes); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}
	return nil
}
