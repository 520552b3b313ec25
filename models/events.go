package models

import "time"

// BookingEventType names a lifecycle change that other parties are told about.
type BookingEventType string

const (
	EventBookingRequested      BookingEventType = "booking.requested"
	EventBookingStatusChanged  BookingEventType = "booking.status_changed"
	EventBookingPaymentUpdated BookingEventType = "booking.payment_updated"
)

// BookingEvent is emitted after a lifecycle change has been persisted.
type BookingEvent struct {
	Type          BookingEventType `json:"type"`
	BookingID     string           `json:"bookingId"`
	PropertyID    string           `json:"propertyId"`
	PropertyName  string           `json:"propertyName"`
	VendorID      string           `json:"vendorId"`
	CustomerUID   string           `json:"customerUid"`
	CustomerName  string           `json:"customerName"`
	Status        BookingStatus    `json:"status,omitempty"`
	PaymentStatus PaymentStatus    `json:"paymentStatus,omitempty"`
	Amount        float64          `json:"amount,omitempty"`
	ActorUID      string           `json:"actorUid"`
	ActorType     UserType         `json:"actorType"`
	OccurredAt    time.Time        `json:"occurredAt"`
}
