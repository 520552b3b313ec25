package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"spacebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedConflictRepo() (*fakeBookingRepo, time.Time) {
	base := time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo()
	repo.put(models.Booking{ID: "b1", PropertyID: "hall", Status: models.StatusBooked,
		BookForFrom: base, BookForTo: base.Add(2 * time.Hour)})
	repo.put(models.Booking{ID: "b2", PropertyID: "hall", Status: models.StatusCancelled,
		BookForFrom: base.Add(4 * time.Hour), BookForTo: base.Add(5 * time.Hour)})
	repo.put(models.Booking{ID: "b3", PropertyID: "other", Status: models.StatusRequested,
		BookForFrom: base.Add(4 * time.Hour), BookForTo: base.Add(5 * time.Hour)})
	return repo, base
}

func TestHasConflict(t *testing.T) {
	repo, base := seedConflictRepo()
	d := NewConflictDetector(repo, zap.NewNop())
	ctx := context.Background()

	conflict, err := d.HasConflict(ctx, "hall", base.Add(time.Hour), base.Add(3*time.Hour), "")
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = d.HasConflict(ctx, "hall", base.Add(2*time.Hour), base.Add(3*time.Hour), "")
	require.NoError(t, err)
	assert.False(t, conflict, "touching endpoints are not a conflict")

	conflict, err = d.HasConflict(ctx, "hall", base.Add(4*time.Hour), base.Add(5*time.Hour), "")
	require.NoError(t, err)
	assert.False(t, conflict, "cancelled bookings free their interval")

	conflict, err = d.HasConflict(ctx, "hall", base, base.Add(time.Hour), "b1")
	require.NoError(t, err)
	assert.False(t, conflict, "a booking does not conflict with itself")
}

func TestCheckBulkAvailability(t *testing.T) {
	repo, base := seedConflictRepo()
	d := NewConflictDetector(repo, zap.NewNop())

	slots := []models.Slot{
		slotAt("morning", base.Add(-2*time.Hour), base),
		slotAt("overlap", base.Add(time.Hour), base.Add(3*time.Hour)),
		slotAt("afternoon", base.Add(4*time.Hour), base.Add(5*time.Hour)),
		slotAt("backwards", base.Add(6*time.Hour), base.Add(5*time.Hour)),
		{ID: "garbled", Start: "not-a-date", End: base.Add(9 * time.Hour).Format(time.RFC3339)},
		{ID: "empty"},
	}

	first := d.CheckBulkAvailability(context.Background(), "hall", slots)
	assert.Equal(t, map[string]bool{
		"morning":   true,
		"overlap":   false,
		"afternoon": true,
		"backwards": false,
		"garbled":   false,
		"empty":     false,
	}, first)

	second := d.CheckBulkAvailability(context.Background(), "hall", slots)
	assert.Equal(t, first, second)
}

func TestCheckBulkAvailabilityLookupFailure(t *testing.T) {
	repo, base := seedConflictRepo()
	repo.overlapErr = errors.New("connection reset")
	d := NewConflictDetector(repo, zap.NewNop())

	got := d.CheckBulkAvailability(context.Background(), "hall", []models.Slot{
		slotAt("a", base.Add(10*time.Hour), base.Add(11*time.Hour)),
	})
	assert.Equal(t, map[string]bool{"a": false}, got)
}

func TestSlotInterval(t *testing.T) {
	from, to, ok := models.Slot{Start: "2030-01-02T09:00:00+02:00", End: "2030-01-02T10:00:00Z"}.Interval()
	require.True(t, ok)
	assert.Equal(t, time.Date(2030, 1, 2, 7, 0, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC), to)

	from, _, ok = models.Slot{Start: "2030-01-02", End: "2030-01-03"}.Interval()
	require.True(t, ok)
	assert.Equal(t, time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC), from)

	for _, s := range []models.Slot{
		{Start: "tomorrow", End: "2030-01-03"},
		{Start: "2030-01-03", End: ""},
		{Start: "2030-01-03", End: "2030-01-03"},
	} {
		_, _, ok = s.Interval()
		assert.False(t, ok, s)
	}
}
