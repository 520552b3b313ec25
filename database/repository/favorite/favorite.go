package favoriteRepo

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

type FavoriteRepository interface {
	// Add inserts a favorite; database.ErrDuplicate when already present.
	Add(ctx context.Context, fav *models.Favorite) error
	// Remove deletes a favorite; database.ErrNotFound when absent.
	Remove(ctx context.Context, customerID, propertyID string) error
	ListByCustomer(ctx context.Context, customerID string) ([]models.Favorite, error)
	Exists(ctx context.Context, customerID, propertyID string) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoFavoriteRepo struct {
	coll *mongo.Collection
}

func NewMongoFavoriteRepo() FavoriteRepository {
	return &mongoFavoriteRepo{coll: database.DB().Collection("favorites")}
}

func (r *mongoFavoriteRepo) Add(ctx context.Context, fav *models.Favorite) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	fav.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, fav); err != nil {
		return database.Translate(err)
	}
	return nil
}

func (r *mongoFavoriteRepo) Remove(ctx context.Context, customerID, propertyID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"customerId": customerID, "propertyId": propertyID})
	if err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoFavoriteRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	defer cursor.Close(ctx)

	favs := []models.Favorite{}
	if err := cursor.All(ctx, &favs); err != nil {
		return nil, fmt.Errorf("error decoding favorites: %w", err)
	}
	return favs, nil
}

func (r *mongoFavoriteRepo) Exists(ctx context.Context, customerID, propertyID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"customerId": customerID, "propertyId": propertyID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}
	return n > 0, nil
}

func (r *mongoFavoriteRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "propertyId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("customer_property_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create favorite indexes: %w", err)
	}
	return nil
}
