package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"spacebook/database"
	"spacebook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RatingRepository interface {
	// Create inserts a rating; database.ErrDuplicate when the booking is already rated.
	Create(ctx context.Context, rating *models.Rating) error
	GetByBooking(ctx context.Context, bookingID string) (*models.Rating, error)
	ListByProperty(ctx context.Context, propertyID string, limit int64) ([]models.Rating, error)
	// Summary aggregates active ratings of a property.
	Summary(ctx context.Context, propertyID string) (models.RatingSummary, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoRatingRepo struct {
	coll *mongo.Collection
}

func NewMongoRatingRepo() RatingRepository {
	return &mongoRatingRepo{coll: database.DB().Collection("ratings")}
}

func (r *mongoRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	now := time.Now()
	rating.CreatedAt = now
	rating.UpdatedAt = now
	rating.IsActive = true

	if _, err := r.coll.InsertOne(ctx, rating); err != nil {
		return database.Translate(err)
	}
	return nil
}

func (r *mongoRatingRepo) GetByBooking(ctx context.Context, bookingID string) (*models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rating models.Rating
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&rating); err != nil {
		return nil, database.Translate(err)
	}
	return &rating, nil
}

func (r *mongoRatingRepo) ListByProperty(ctx context.Context, propertyID string, limit int64) ([]models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"propertyId": propertyID, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing ratings: %w", err)
	}
	defer cursor.Close(ctx)

	ratings := []models.Rating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("error decoding ratings: %w", err)
	}
	return ratings, nil
}

func (r *mongoRatingRepo) Summary(ctx context.Context, propertyID string) (models.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"propertyId": propertyID, "isActive": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$propertyId",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("error aggregating ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.RatingSummary
	if err := cursor.All(ctx, &out); err != nil {
		return models.RatingSummary{}, fmt.Errorf("error decoding rating summary: %w", err)
	}
	if len(out) == 0 {
		return models.RatingSummary{}, nil
	}
	return out[0], nil
}

func (r *mongoRatingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking"),
		},
		{
			Keys:    bson.D{{Key: "propertyId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetName("property_active_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create rating indexes: %w", err)
	}
	return nil
}
