package models

import "time"

// TransactionType names which payment step a ledger entry records.
type TransactionType string

const (
	TransactionFullPayment      TransactionType = "full_payment"
	TransactionAdvancePayment   TransactionType = "advance_payment"
	TransactionRemainingPayment TransactionType = "remaining_payment"
)

// Transaction is an append-only ledger entry for one payment event on a booking.
type Transaction struct {
	ID              string          `bson:"id" json:"id"`
	BookingID       string          `bson:"bookingId" json:"bookingId"`
	Amount          float64         `bson:"amount" json:"amount"`
	PaymentMode     PaymentMode     `bson:"paymentMode" json:"paymentMode"`
	PaymentStatus   PaymentStatus   `bson:"paymentStatus" json:"paymentStatus"`
	TransactionType TransactionType `bson:"transactionType" json:"transactionType"`
	TransactionDate time.Time       `bson:"transactionDate" json:"transactionDate"`
	ReferenceNumber string          `bson:"referenceNumber" json:"referenceNumber"`
	Notes           string          `bson:"notes" json:"notes"`
	CreatedBy       string          `bson:"createdBy" json:"createdBy"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
}
