package booking

import (
	"errors"
	"fmt"

	"spacebook/models"
)

// ErrorKind is the stable category callers use to decide how to react.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindTransition ErrorKind = "transition"
	KindNotFound   ErrorKind = "not_found"
	KindForbidden  ErrorKind = "forbidden"
	KindInternal   ErrorKind = "internal"
)

// Error is returned by every booking operation.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the category of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

func newValidationError(code, msg string) error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func newNotFoundError(code, msg string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func newForbiddenError(msg string) error {
	return &Error{Kind: KindForbidden, Code: "accessDenied", Message: msg}
}

func newInternalError(msg string, err error) error {
	return &Error{Kind: KindInternal, Code: "serverError", Message: msg, Err: err}
}

// ErrSlotUnavailable is returned when the requested interval overlaps an active booking.
var ErrSlotUnavailable = &Error{
	Kind:    KindConflict,
	Code:    "slotUnavailable",
	Message: "the selected time slot is not available",
}

// ErrReferenceUsed is returned when a card payment reference is already on the ledger.
var ErrReferenceUsed = &Error{
	Kind:    KindConflict,
	Code:    "paymentReferenceUsed",
	Message: "this payment reference has already been recorded",
}

func newStatusTransitionError(from, to models.BookingStatus) error {
	return &Error{
		Kind:    KindTransition,
		Code:    "invalidStatusTransition",
		Message: fmt.Sprintf("cannot change status from %s to %s", from, to),
	}
}

func newPaymentTransitionError(from, to models.PaymentStatus) error {
	return &Error{
		Kind:    KindTransition,
		Code:    "invalidPaymentTransition",
		Message: fmt.Sprintf("cannot change payment status from %s to %s", from, to),
	}
}
