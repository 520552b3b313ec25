package transactionRepo

import (
	"context"
	"fmt"
	"time"

	"spacebook/database"
	"spacebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionRepository reads the payment ledger. Entries are appended by
// bookingRepo.ApplyPayment together with the booking update.
type TransactionRepository interface {
	ListByBooking(ctx context.Context, bookingID string) ([]models.Transaction, error)
}

type mongoTransactionRepo struct {
	coll *mongo.Collection
}

func NewMongoTransactionRepo() TransactionRepository {
	return &mongoTransactionRepo{coll: database.DB().Collection("transactions")}
}

// ListByBooking returns the ledger of a booking, newest first.
func (r *mongoTransactionRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"bookingId": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions of booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	txns := []models.Transaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %w", err)
	}
	return txns, nil
}
