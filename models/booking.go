package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusRequested BookingStatus = "Requested"
	StatusBooked    BookingStatus = "Booked"
	StatusNotBooked BookingStatus = "NotBooked"
	StatusCancelled BookingStatus = "Cancelled"
	StatusCompleted BookingStatus = "Completed"
)

var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusRequested: {StatusBooked, StatusNotBooked, StatusCancelled},
	StatusBooked:    {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNotBooked: {},
}

// ActiveStatuses are the statuses that occupy a property's calendar.
var ActiveStatuses = []BookingStatus{StatusRequested, StatusBooked}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s BookingStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// IsActive reports whether a booking in status s blocks its interval.
func (s BookingStatus) IsActive() bool {
	return s == StatusRequested || s == StatusBooked
}

// PaymentStatus is the payment state of a booking.
type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentAdvancePaid PaymentStatus = "advancePaid"
	PaymentPaid        PaymentStatus = "paid"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid:      {PaymentAdvancePaid, PaymentPaid},
	PaymentAdvancePaid: {PaymentPaid},
	PaymentPaid:        {},
}

// IsValid reports whether p is a known payment status.
func (p PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[p]
	return ok
}

// CanTransitionTo reports whether moving from p to target is allowed.
func (p PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, t := range paymentTransitions[p] {
		if t == target {
			return true
		}
	}
	return false
}

// PaymentMode is how money was collected.
type PaymentMode string

const (
	PaymentModeNone   PaymentMode = ""
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeCheque PaymentMode = "cheque"
	PaymentModeUPI    PaymentMode = "upi"
	PaymentModeCard   PaymentMode = "card"
)

// IsValid reports whether m is an accepted payment mode for a payment update.
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCheque, PaymentModeUPI, PaymentModeCard:
		return true
	}
	return false
}

// Booking is a reserved half-open interval [BookForFrom, BookForTo) on a property.
type Booking struct {
	ID       string `bson:"id" json:"id"`
	UID      string `bson:"uid" json:"uid"`
	UserName string `bson:"userName" json:"userName"`
	MobileNo string `bson:"mobileNo" json:"mobileNo"`
	Email    string `bson:"email" json:"email"`

	PropertyID string `bson:"propertyId" json:"propertyId"`
	VendorID   string `bson:"vendorId" json:"vendorId"`

	BookForFrom time.Time `bson:"bookforFromDateTime" json:"bookforFromDateTime"`
	BookForTo   time.Time `bson:"bookforToDateTime" json:"bookforToDateTime"`

	Status          BookingStatus `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMode     PaymentMode   `bson:"paymentMode" json:"paymentMode"`
	PaymentDateTime *time.Time    `bson:"paymentDateTime,omitempty" json:"paymentDateTime,omitempty"`

	PropertyCost    float64 `bson:"propertyCost" json:"propertyCost"`
	MinAdvanced     float64 `bson:"minAdvanced" json:"minAdvanced"`
	TotalAmount     float64 `bson:"totalAmount" json:"totalAmount"`
	RemainingAmount float64 `bson:"remainingAmount" json:"remainingAmount"`
	Duration        int     `bson:"duration" json:"duration"`
	DurationText    string  `bson:"durationText" json:"durationText"`

	// PropertySnapshot is the property as it was when the booking was created.
	PropertySnapshot string `bson:"currrentPropertyJson" json:"currrentPropertyJson"`

	UserRemark  string `bson:"userRemark" json:"userRemark"`
	AdminRemark string `bson:"adminRemark" json:"adminRemark"`
	NextSlot    bool   `bson:"nextslot" json:"nextslot"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
}

// Overlaps reports whether the booking's interval intersects [from, to).
// Touching endpoints do not overlap.
func (b Booking) Overlaps(from, to time.Time) bool {
	return b.BookForFrom.Before(to) && b.BookForTo.After(from)
}
