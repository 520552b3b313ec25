package booking

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"spacebook/database"
	"spacebook/models"

	"go.uber.org/zap"
)

// activeProperty loads a property that can currently be booked.
func (s *DefaultBookingService) activeProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, newValidationError("missingPropertyId", "property id is required")
	}
	p, err := s.Properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, newNotFoundError("propertyUnavailable", "property not found or not active")
		}
		return nil, newInternalError("failed to load property", err)
	}
	if !p.IsActive {
		return nil, newNotFoundError("propertyUnavailable", "property not found or not active")
	}
	return p, nil
}

func requireRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return newValidationError("missingDates", "from and to date are required")
	}
	if !from.Before(to) {
		return newValidationError("invalidRange", "end time must be after start time")
	}
	return nil
}

func (s *DefaultBookingService) CalculatePrice(ctx context.Context, propertyID string, from, to time.Time) (*models.PriceQuote, error) {
	if err := requireRange(from, to); err != nil {
		return nil, err
	}
	p, err := s.activeProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !p.Unit.IsValid() {
		return nil, newValidationError("invalidUnit", "property has an unsupported pricing unit")
	}
	quote := CalculatePrice(p, from, to, s.Location)
	return &quote, nil
}

func (s *DefaultBookingService) CheckAvailability(ctx context.Context, propertyID string, from, to time.Time) (bool, error) {
	if err := requireRange(from, to); err != nil {
		return false, err
	}
	if _, err := s.activeProperty(ctx, propertyID); err != nil {
		return false, err
	}
	conflict, err := s.Detector.HasConflict(ctx, propertyID, from, to, "")
	if err != nil {
		return false, newInternalError("failed to check availability", err)
	}
	return !conflict, nil
}

func (s *DefaultBookingService) CheckBulkAvailability(ctx context.Context, propertyID string, slots []models.Slot) (map[string]bool, error) {
	if slots == nil {
		return nil, newValidationError("missingSlots", "property id and slots array are required")
	}
	if _, err := s.activeProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return map[string]bool{}, nil
	}
	return s.Detector.CheckBulkAvailability(ctx, propertyID, slots), nil
}

// CreateBooking validates the request, then checks for conflicts and inserts
// while holding the property lock. The vendor is notified afterwards.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, caller models.Caller, in models.CreateBookingInput) (*models.Booking, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}
	property, err := s.activeProperty(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := validateInterval(in.From, in.To, now); err != nil {
		return nil, err
	}
	if err := ValidateUnitBoundaries(property.Unit, in.From, in.To, s.Location); err != nil {
		return nil, err
	}

	quote := s.quoteFor(property, in)
	snapshot, err := json.Marshal(property)
	if err != nil {
		return nil, newInternalError("failed to snapshot property", err)
	}

	b := &models.Booking{
		UID:              caller.UID,
		UserName:         strings.TrimSpace(in.UserName),
		MobileNo:         strings.TrimSpace(in.MobileNo),
		Email:            strings.TrimSpace(in.Email),
		PropertyID:       property.ID,
		VendorID:         property.VendorID,
		BookForFrom:      in.From,
		BookForTo:        in.To,
		Status:           models.StatusRequested,
		PaymentStatus:    models.PaymentUnpaid,
		PaymentMode:      models.PaymentModeNone,
		PropertyCost:     firstPositive(in.PropertyCost, property.Price),
		MinAdvanced:      firstPositive(in.MinAdvanced, property.MinAdvanceBookingAmount),
		TotalAmount:      quote.TotalAmount,
		RemainingAmount:  quote.TotalAmount,
		Duration:         quote.Duration,
		DurationText:     quote.DurationText,
		PropertySnapshot: string(snapshot),
		UserRemark:       in.UserRemark,
		NextSlot:         in.NextSlot,
		CreatedBy:        caller.UID,
		UpdatedBy:        caller.UID,
	}

	if err := s.withPropertyLock(ctx, property.ID, func() error {
		conflict, err := s.Detector.HasConflict(ctx, property.ID, in.From, in.To, "")
		if err != nil {
			return newInternalError("failed to check availability", err)
		}
		if conflict {
			return ErrSlotUnavailable
		}
		if err := s.Bookings.Create(ctx, b); err != nil {
			return newInternalError("failed to create booking", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.Logger.Info("Booking created",
		zap.String("bookingId", b.ID),
		zap.String("propertyId", b.PropertyID),
		zap.String("uid", b.UID))

	s.publish(ctx, b, property.Name, models.EventBookingRequested, caller, 0)
	return b, nil
}

// quoteFor honours caller supplied totals and falls back to the tariff.
func (s *DefaultBookingService) quoteFor(p *models.Property, in models.CreateBookingInput) models.PriceQuote {
	if in.TotalAmount > 0 && in.Duration > 0 {
		text := in.DurationText
		if text == "" {
			text = DurationText(p.Unit, in.Duration)
		}
		return models.PriceQuote{
			Duration:     in.Duration,
			DurationText: text,
			BaseAmount:   in.TotalAmount,
			TotalAmount:  in.TotalAmount,
		}
	}
	return CalculatePrice(p, in.From, in.To, s.Location)
}

func (s *DefaultBookingService) withPropertyLock(ctx context.Context, propertyID string, fn func() error) error {
	release, err := s.Locker.Acquire(ctx, propertyID)
	if err != nil {
		return newInternalError("property is busy, try again", err)
	}
	defer release()
	return fn()
}

func firstPositive(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
