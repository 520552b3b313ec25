package models

import "time"

// Favorite marks a property saved by a customer. (customerId, propertyId) is unique.
type Favorite struct {
	ID         string    `bson:"id" json:"id"`
	CustomerID string    `bson:"customerId" json:"customerId"`
	PropertyID string    `bson:"propertyId" json:"propertyId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
