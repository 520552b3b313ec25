package propertyRepo

import (
	"context"

	"spacebook/database"
	"spacebook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PropertyRepository reads the catalog snapshot and maintains rating stats.
type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Property, error)
	UpdateRatingStats(ctx context.Context, id string, summary models.RatingSummary) error
	EnsureIndexes(ctx context.Context) error
}

type mongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo constructs a PropertyRepository backed by MongoDB.
func NewMongoPropertyRepo() PropertyRepository {
	return &mongoPropertyRepo{coll: database.DB().Collection("properties")}
}
