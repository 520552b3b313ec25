package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spacebook/database"
	"spacebook/models"

	"go.uber.org/zap"
)

// loadBooking fetches a booking and checks the caller may see it.
func (s *DefaultBookingService) loadBooking(ctx context.Context, caller models.Caller, id string) (*models.Booking, error) {
	if id == "" {
		return nil, newValidationError("missingBookingId", "booking id is required")
	}
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, newNotFoundError("bookingNotFound", "booking not found")
		}
		return nil, newInternalError("failed to load booking", err)
	}
	if !canView(caller, b) {
		return nil, newForbiddenError("access denied")
	}
	return b, nil
}

// currentStatus re-reads a booking after a conditional update lost a race.
func (s *DefaultBookingService) currentStatus(ctx context.Context, id string, fallback models.BookingStatus) models.BookingStatus {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return fallback
	}
	return b.Status
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, caller models.Caller, id string) (*models.Booking, error) {
	return s.loadBooking(ctx, caller, id)
}

func (s *DefaultBookingService) GetTransactions(ctx context.Context, caller models.Caller, id string) ([]models.Transaction, error) {
	if _, err := s.loadBooking(ctx, caller, id); err != nil {
		return nil, err
	}
	txns, err := s.Transactions.ListByBooking(ctx, id)
	if err != nil {
		return nil, newInternalError("failed to load transactions", err)
	}
	return txns, nil
}

// UpdateStatus applies one step of the status machine. Cancellation goes
// through the same gate as CancelBooking.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, caller models.Caller, id string, target models.BookingStatus, remark string) (*models.Booking, error) {
	if !target.IsValid() {
		return nil, newValidationError("invalidStatus", fmt.Sprintf("unknown booking status %q", target))
	}
	if target == models.StatusCancelled {
		return s.CancelBooking(ctx, caller, id, remark)
	}

	b, err := s.loadBooking(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !canSetStatus(caller, b, target) {
		return nil, newForbiddenError("only the property vendor or an admin can set this status")
	}
	if !b.Status.CanTransitionTo(target) {
		return nil, newStatusTransitionError(b.Status, target)
	}

	updated, err := s.Bookings.UpdateStatus(ctx, id, b.Status, target, remark, caller.UID, s.now())
	if err != nil {
		if errors.Is(err, database.ErrStateChanged) {
			return nil, newStatusTransitionError(s.currentStatus(ctx, id, b.Status), target)
		}
		return nil, newInternalError("failed to update booking status", err)
	}

	s.Logger.Info("Booking status updated",
		zap.String("bookingId", id),
		zap.String("from", string(b.Status)),
		zap.String("to", string(target)))

	s.publish(ctx, updated, snapshotName(updated), models.EventBookingStatusChanged, caller, 0)
	return updated, nil
}

func notCancellable(status models.BookingStatus) error {
	return &Error{
		Kind:    KindTransition,
		Code:    "notCancellable",
		Message: fmt.Sprintf("cannot cancel booking with status: %s", status),
	}
}

// CancelBooking cancels a Requested or Booked booking on behalf of either party.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, caller models.Caller, id, remark string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.IsActive() {
		return nil, notCancellable(b.Status)
	}
	if remark == "" {
		remark = fmt.Sprintf("Cancelled by %s", caller.UserType)
	}

	updated, err := s.Bookings.UpdateStatus(ctx, id, b.Status, models.StatusCancelled, remark, caller.UID, s.now())
	if err != nil {
		if errors.Is(err, database.ErrStateChanged) {
			return nil, notCancellable(s.currentStatus(ctx, id, b.Status))
		}
		return nil, newInternalError("failed to cancel booking", err)
	}

	s.Logger.Info("Booking cancelled", zap.String("bookingId", id), zap.String("by", caller.UID))
	s.publish(ctx, updated, snapshotName(updated), models.EventBookingStatusChanged, caller, 0)
	return updated, nil
}

// RescheduleBooking moves an unpaid active booking to a new interval, repricing
// it against the tariff frozen at creation.
func (s *DefaultBookingService) RescheduleBooking(ctx context.Context, caller models.Caller, id string, from, to time.Time) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.IsActive() || b.PaymentStatus != models.PaymentUnpaid {
		return nil, &Error{
			Kind:    KindTransition,
			Code:    "notReschedulable",
			Message: fmt.Sprintf("cannot reschedule booking with status %s and payment status %s", b.Status, b.PaymentStatus),
		}
	}
	if err := validateInterval(from, to, s.now()); err != nil {
		return nil, err
	}

	tariff, err := s.tariffOf(ctx, b)
	if err != nil {
		return nil, err
	}
	if err := ValidateUnitBoundaries(tariff.Unit, from, to, s.Location); err != nil {
		return nil, err
	}

	quote := CalculatePrice(tariff, from, to, s.Location)
	expected := b.Status
	b.BookForFrom = from
	b.BookForTo = to
	b.Duration = quote.Duration
	b.DurationText = quote.DurationText
	b.TotalAmount = quote.TotalAmount
	b.RemainingAmount = quote.TotalAmount
	b.UpdatedBy = caller.UID
	b.UpdatedAt = s.now()

	err = s.withPropertyLock(ctx, b.PropertyID, func() error {
		conflict, err := s.Detector.HasConflict(ctx, b.PropertyID, from, to, b.ID)
		if err != nil {
			return newInternalError("failed to check availability", err)
		}
		if conflict {
			return ErrSlotUnavailable
		}
		if err := s.Bookings.Reschedule(ctx, b, expected); err != nil {
			if errors.Is(err, database.ErrStateChanged) {
				return &Error{Kind: KindTransition, Code: "notReschedulable", Message: "booking changed while rescheduling"}
			}
			return newInternalError("failed to reschedule booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Booking rescheduled", zap.String("bookingId", id))
	return b, nil
}

// tariffOf returns the property as frozen on the booking, falling back to the
// live catalog when the snapshot is unreadable.
func (s *DefaultBookingService) tariffOf(ctx context.Context, b *models.Booking) (*models.Property, error) {
	var p models.Property
	if b.PropertySnapshot != "" && json.Unmarshal([]byte(b.PropertySnapshot), &p) == nil && p.Unit.IsValid() {
		return &p, nil
	}
	live, err := s.Properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, newNotFoundError("propertyUnavailable", "property not found or not active")
		}
		return nil, newInternalError("failed to load property", err)
	}
	return live, nil
}

func snapshotName(b *models.Booking) string {
	var p struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal([]byte(b.PropertySnapshot), &p)
	return p.Name
}

func (s *DefaultBookingService) publish(ctx context.Context, b *models.Booking, propertyName string, kind models.BookingEventType, caller models.Caller, amount float64) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(ctx, models.BookingEvent{
		Type:          kind,
		BookingID:     b.ID,
		PropertyID:    b.PropertyID,
		PropertyName:  propertyName,
		VendorID:      b.VendorID,
		CustomerUID:   b.UID,
		CustomerName:  b.UserName,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Amount:        amount,
		ActorUID:      caller.UID,
		ActorType:     caller.UserType,
		OccurredAt:    s.now(),
	})
}
