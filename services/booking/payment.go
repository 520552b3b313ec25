package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spacebook/database"
	"spacebook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// planPayment computes the booking fields and ledger entry for moving b to
// in.PaymentStatus. b is modified in place only when no error is returned.
func planPayment(b *models.Booking, in models.PaymentUpdateInput, actor string, now time.Time) (*models.Transaction, error) {
	if in.PaymentStatus == "" || in.PaymentMode == "" {
		return nil, newValidationError("missingPaymentFields", "payment status and payment mode are required")
	}
	if !in.PaymentStatus.IsValid() {
		return nil, newValidationError("invalidPaymentStatus", fmt.Sprintf("unknown payment status %q", in.PaymentStatus))
	}
	if !in.PaymentMode.IsValid() {
		return nil, newValidationError("invalidPaymentMode", fmt.Sprintf("unsupported payment mode %q", in.PaymentMode))
	}
	if !b.PaymentStatus.CanTransitionTo(in.PaymentStatus) {
		return nil, newPaymentTransitionError(b.PaymentStatus, in.PaymentStatus)
	}

	var (
		amount    float64
		txnType   models.TransactionType
		remaining float64
	)
	switch in.PaymentStatus {
	case models.PaymentAdvancePaid:
		if in.AdvanceAmount <= 0 || in.AdvanceAmount < b.MinAdvanced {
			return nil, newValidationError("advanceTooLow", fmt.Sprintf("advance amount must be at least %.2f", b.MinAdvanced))
		}
		if in.AdvanceAmount > b.TotalAmount {
			return nil, newValidationError("advanceTooHigh", "advance amount cannot exceed total amount")
		}
		amount = in.AdvanceAmount
		txnType = models.TransactionAdvancePayment
		remaining = b.TotalAmount - in.AdvanceAmount
	case models.PaymentPaid:
		if b.PaymentStatus == models.PaymentAdvancePaid {
			amount = b.RemainingAmount
			txnType = models.TransactionRemainingPayment
		} else {
			amount = b.TotalAmount
			txnType = models.TransactionFullPayment
		}
		remaining = 0
	default:
		return nil, newValidationError("invalidPaymentStatus", "invalid payment status")
	}

	ref := strings.TrimSpace(in.ReferenceNumber)
	if ref == "" {
		ref = newReferenceNumber(now)
	}

	txn := &models.Transaction{
		ID:              uuid.New().String(),
		BookingID:       b.ID,
		Amount:          amount,
		PaymentMode:     in.PaymentMode,
		PaymentStatus:   in.PaymentStatus,
		TransactionType: txnType,
		TransactionDate: now,
		ReferenceNumber: ref,
		Notes:           in.Notes,
		CreatedBy:       actor,
		CreatedAt:       now,
	}

	paidAt := now
	b.PaymentStatus = in.PaymentStatus
	b.PaymentMode = in.PaymentMode
	b.PaymentDateTime = &paidAt
	b.RemainingAmount = remaining
	b.UpdatedBy = actor
	b.UpdatedAt = now
	return txn, nil
}

// newReferenceNumber builds TXN<unix millis><5 random chars>.
func newReferenceNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:5]
	return strings.ToUpper(fmt.Sprintf("TXN%d%s", now.UnixMilli(), suffix))
}

// UpdatePayment moves the payment status forward and appends the ledger entry
// in one store transaction.
func (s *DefaultBookingService) UpdatePayment(ctx context.Context, caller models.Caller, id string, in models.PaymentUpdateInput) (*models.PaymentUpdateResult, error) {
	b, err := s.loadBooking(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !canRecordPayment(caller, b) {
		return nil, newForbiddenError("only the property vendor or an admin can update payment status")
	}

	previous := b.PaymentStatus
	working := *b
	txn, err := planPayment(&working, in, caller.UID, s.now())
	if err != nil {
		return nil, err
	}

	if in.PaymentMode == models.PaymentModeCard && s.Cards != nil {
		if strings.TrimSpace(in.ReferenceNumber) == "" {
			return nil, newValidationError("missingReference", "card payments require the payment reference")
		}
		ok, err := s.Cards.VerifyCardPayment(ctx, in.ReferenceNumber, txn.Amount)
		if err != nil {
			return nil, newInternalError("failed to verify card payment", err)
		}
		if !ok {
			return nil, newValidationError("paymentNotVerified", "card payment could not be verified for this amount")
		}
	}

	if err := s.Bookings.ApplyPayment(ctx, &working, previous, txn); err != nil {
		if errors.Is(err, database.ErrStateChanged) {
			current := previous
			if fresh, ferr := s.Bookings.GetByID(ctx, id); ferr == nil {
				current = fresh.PaymentStatus
			}
			return nil, newPaymentTransitionError(current, in.PaymentStatus)
		}
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrReferenceUsed
		}
		return nil, newInternalError("failed to record payment", err)
	}

	s.Logger.Info("Booking payment updated",
		zap.String("bookingId", id),
		zap.String("paymentStatus", string(working.PaymentStatus)),
		zap.Float64("amount", txn.Amount))

	s.publish(ctx, &working, snapshotName(&working), models.EventBookingPaymentUpdated, caller, txn.Amount)
	return &models.PaymentUpdateResult{Booking: &working, Transaction: txn}, nil
}
