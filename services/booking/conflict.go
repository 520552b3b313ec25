package booking

import (
	"context"
	"fmt"
	"time"

	"spacebook/database/repository"
	"spacebook/models"

	"go.uber.org/zap"
)

// ConflictDetector answers whether intervals on a property are free.
type ConflictDetector struct {
	bookings repository.BookingRepository
	logger   *zap.Logger
}

func NewConflictDetector(bookings repository.BookingRepository, logger *zap.Logger) *ConflictDetector {
	return &ConflictDetector{bookings: bookings, logger: logger}
}

// HasConflict reports whether [from, to) overlaps an active booking on the
// property other than excludeID.
func (d *ConflictDetector) HasConflict(ctx context.Context, propertyID string, from, to time.Time, excludeID string) (bool, error) {
	conflict, err := d.bookings.ExistsOverlap(ctx, propertyID, from, to, excludeID)
	if err != nil {
		return false, fmt.Errorf("conflict check for property %s: %w", propertyID, err)
	}
	return conflict, nil
}

// CheckBulkAvailability evaluates every slot against one fetch of the active
// bookings covering the batch. Malformed slots and lookup failures are reported
// as unavailable instead of failing the batch.
func (d *ConflictDetector) CheckBulkAvailability(ctx context.Context, propertyID string, slots []models.Slot) map[string]bool {
	availability := make(map[string]bool, len(slots))

	type interval struct {
		id       string
		from, to time.Time
	}

	var windowStart, windowEnd time.Time
	valid := make([]interval, 0, len(slots))
	for _, slot := range slots {
		from, to, ok := slot.Interval()
		if !ok {
			availability[slot.ID] = false
			continue
		}
		if windowStart.IsZero() || from.Before(windowStart) {
			windowStart = from
		}
		if to.After(windowEnd) {
			windowEnd = to
		}
		valid = append(valid, interval{id: slot.ID, from: from, to: to})
	}
	if len(valid) == 0 {
		return availability
	}

	existing, err := d.bookings.FindActiveOverlapping(ctx, propertyID, windowStart, windowEnd)
	if err != nil {
		d.logger.Error("Bulk availability lookup failed",
			zap.String("propertyId", propertyID), zap.Error(err))
		for _, slot := range valid {
			availability[slot.id] = false
		}
		return availability
	}

	for _, slot := range valid {
		free := true
		for _, b := range existing {
			if b.Overlaps(slot.from, slot.to) {
				free = false
				break
			}
		}
		availability[slot.id] = free
	}
	return availability
}
