package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	return &MongoUserRepo{coll: database.DB().Collection("users")}
}

// newContext derives a bounded context from the caller's.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user with uid %s: %w", uid, database.Translate(err))
	}
	return &user, nil
}

func (r *MongoUserRepo) UpsertFCMToken(ctx context.Context, caller models.Caller, token string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{"fcmToken": token, "updatedAt": now},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"uid":       caller.UID,
			"name":      caller.Name,
			"userType":  caller.UserType,
			"createdAt": now,
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"uid": caller.UID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store fcm token for %s: %w", caller.UID, err)
	}
	return nil
}

func (r *MongoUserRepo) ClearFCMToken(ctx context.Context, uid, token string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"uid": uid, "fcmToken": token}
	update := bson.M{"$unset": bson.M{"fcmToken": ""}, "$set": bson.M{"updatedAt": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to clear fcm token for %s: %w", uid, err)
	}
	return nil
}
