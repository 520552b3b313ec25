package models

import (
	"strings"
	"time"
)

// CreateBookingInput carries the fields a customer submits to request a booking.
// TotalAmount and Duration are optional precomputed totals; when either is zero
// the price is computed from the property tariff.
type CreateBookingInput struct {
	PropertyID   string    `json:"propertyId"`
	UserName     string    `json:"userName"`
	MobileNo     string    `json:"mobileNo"`
	Email        string    `json:"email"`
	UserRemark   string    `json:"userRemark"`
	From         time.Time `json:"bookforFromDateTime"`
	To           time.Time `json:"bookforToDateTime"`
	PropertyCost float64   `json:"propertyCost"`
	MinAdvanced  float64   `json:"minAdvanced"`
	NextSlot     bool      `json:"nextslot"`
	TotalAmount  float64   `json:"totalAmount"`
	Duration     int       `json:"duration"`
	DurationText string    `json:"durationText"`
}

// PriceQuote is the result of pricing an interval against a property tariff.
type PriceQuote struct {
	Duration     int     `json:"duration"`
	DurationText string  `json:"durationText"`
	BaseAmount   float64 `json:"baseAmount"`
	Discount     float64 `json:"discount"`
	TotalAmount  float64 `json:"totalAmount"`
}

// Slot is one candidate interval in a bulk availability request. Start and
// End stay raw so one unparseable slot does not reject the whole batch.
type Slot struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

var slotLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// Interval parses the slot bounds. Bounds without an offset are read as UTC.
func (s Slot) Interval() (time.Time, time.Time, bool) {
	from, ok := parseSlotTime(s.Start)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := parseSlotTime(s.End)
	if !ok || !from.Before(to) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func parseSlotTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PaymentUpdateInput moves a booking's payment status forward.
type PaymentUpdateInput struct {
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaymentMode     PaymentMode   `json:"paymentMode"`
	AdvanceAmount   float64       `json:"advanceAmount"`
	ReferenceNumber string        `json:"referenceNumber"`
	Notes           string        `json:"notes"`
}

// PaymentUpdateResult is the booking after a payment transition and the ledger entry it produced.
type PaymentUpdateResult struct {
	Booking     *Booking     `json:"booking"`
	Transaction *Transaction `json:"transaction"`
}
