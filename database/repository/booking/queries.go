package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"spacebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches active bookings on a property whose half-open interval
// intersects [from, to): existing.from < to AND existing.to > from.
func overlapFilter(propertyID string, from, to time.Time) bson.M {
	return bson.M{
		"propertyId":          propertyID,
		"status":              bson.M{"$in": models.ActiveStatuses},
		"bookforFromDateTime": bson.M{"$lt": to},
		"bookforToDateTime":   bson.M{"$gt": from},
	}
}

// ExistsOverlap reports whether any active booking conflicts with [from, to).
func (r *mongoBookingRepo) ExistsOverlap(ctx context.Context, propertyID string, from, to time.Time, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := overlapFilter(propertyID, from, to)
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking overlapping bookings: %w", err)
	}
	return n > 0, nil
}

// FindActiveOverlapping loads the active bookings intersecting [from, to) in one query.
func (r *mongoBookingRepo) FindActiveOverlapping(ctx context.Context, propertyID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "bookforFromDateTime", Value: 1}}).
		SetProjection(bson.M{
			"id":                  1,
			"propertyId":          1,
			"status":              1,
			"bookforFromDateTime": 1,
			"bookforToDateTime":   1,
		})

	cursor, err := r.coll.Find(ctx, overlapFilter(propertyID, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("error finding overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding overlapping bookings: %w", err)
	}
	return bookings, nil
}
