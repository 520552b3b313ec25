package models

import "time"

// PriceUnit is the billing granularity of a property.
type PriceUnit string

const (
	UnitPerMinute PriceUnit = "per_minute"
	UnitPerHour   PriceUnit = "per_hour"
	UnitPerDay    PriceUnit = "per_day"
	UnitPerMonth  PriceUnit = "per_month"
)

// IsValid reports whether u is one of the supported billing units.
func (u PriceUnit) IsValid() bool {
	switch u {
	case UnitPerMinute, UnitPerHour, UnitPerDay, UnitPerMonth:
		return true
	}
	return false
}

// Noun returns the singular word used in human readable durations.
func (u PriceUnit) Noun() string {
	switch u {
	case UnitPerMinute:
		return "minute"
	case UnitPerHour:
		return "hour"
	case UnitPerDay:
		return "day"
	case UnitPerMonth:
		return "month"
	}
	return ""
}

// Property is a vendor-owned bookable resource with a time based tariff.
type Property struct {
	ID                      string    `bson:"id" json:"id"`
	VendorID                string    `bson:"vendorId" json:"vendorId"`
	Name                    string    `bson:"name" json:"name"`
	Description             string    `bson:"description" json:"description"`
	PropertyTypeID          string    `bson:"propertyTypeId,omitempty" json:"propertyTypeId,omitempty"`
	IconImageURLs           []string  `bson:"iconImageUrls,omitempty" json:"iconImageUrls,omitempty"`
	IconImageThumbURL       string    `bson:"iconImageThumbUrl,omitempty" json:"iconImageThumbUrl,omitempty"`
	Unit                    PriceUnit `bson:"unit" json:"unit"`
	Price                   float64   `bson:"price" json:"price"`
	DiscountAmount          float64   `bson:"discountAmount" json:"discountAmount"`
	MinAdvanceBookingAmount float64   `bson:"minAdvanceBookingAmount" json:"minAdvanceBookingAmount"`
	IsActive                bool      `bson:"isActive" json:"isActive"`
	AverageRating           float64   `bson:"averageRating" json:"averageRating"`
	RatingCount             int       `bson:"ratingCount" json:"ratingCount"`
	CreatedAt               time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy               string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt               time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy               string    `bson:"updatedBy" json:"updatedBy"`
}
