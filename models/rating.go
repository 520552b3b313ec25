package models

import "time"

// Rating is a customer's review of a completed booking. One per booking.
type Rating struct {
	ID           string    `bson:"id" json:"id"`
	PropertyID   string    `bson:"propertyId" json:"propertyId"`
	CustomerID   string    `bson:"customerId" json:"customerId"`
	CustomerName string    `bson:"customerName" json:"customerName"`
	BookingID    string    `bson:"bookingId" json:"bookingId"`
	Rating       int       `bson:"rating" json:"rating"`
	Review       string    `bson:"review,omitempty" json:"review,omitempty"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RatingSummary is the aggregate rating of a property.
type RatingSummary struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}
