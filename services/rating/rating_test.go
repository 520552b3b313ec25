package rating

import (
	"context"
	"strings"
	"testing"

	"spacebook/database"
	"spacebook/database/repository"
	"spacebook/models"
	"spacebook/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBookings struct {
	repository.BookingRepository
	bookings map[string]models.Booking
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

type fakeRatings struct {
	byBooking map[string]models.Rating
}

func (f *fakeRatings) Create(_ context.Context, r *models.Rating) error {
	if _, ok := f.byBooking[r.BookingID]; ok {
		return database.ErrDuplicate
	}
	f.byBooking[r.BookingID] = *r
	return nil
}

func (f *fakeRatings) GetByBooking(_ context.Context, bookingID string) (*models.Rating, error) {
	r, ok := f.byBooking[bookingID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRatings) ListByProperty(_ context.Context, propertyID string, _ int64) ([]models.Rating, error) {
	var out []models.Rating
	for _, r := range f.byBooking {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatings) Summary(_ context.Context, propertyID string) (models.RatingSummary, error) {
	var sum models.RatingSummary
	total := 0
	for _, r := range f.byBooking {
		if r.PropertyID == propertyID {
			total += r.Rating
			sum.Count++
		}
	}
	if sum.Count > 0 {
		sum.Average = float64(total) / float64(sum.Count)
	}
	return sum, nil
}

func (f *fakeRatings) EnsureIndexes(context.Context) error { return nil }

type fakeProperties struct {
	repository.PropertyRepository
	stats map[string]models.RatingSummary
}

func (f *fakeProperties) UpdateRatingStats(_ context.Context, id string, s models.RatingSummary) error {
	f.stats[id] = s
	return nil
}

var asha = models.Caller{UID: "cust-1", UserType: models.UserTypeCustomer}

func newTestRatingService() (*DefaultRatingService, *fakeProperties) {
	props := &fakeProperties{stats: map[string]models.RatingSummary{}}
	return &DefaultRatingService{
		Ratings: &fakeRatings{byBooking: map[string]models.Rating{}},
		Bookings: &fakeBookings{bookings: map[string]models.Booking{
			"done":    {ID: "done", UID: asha.UID, UserName: "Asha", PropertyID: "hall", Status: models.StatusCompleted},
			"done2":   {ID: "done2", UID: asha.UID, PropertyID: "hall", Status: models.StatusCompleted},
			"pending": {ID: "pending", UID: asha.UID, PropertyID: "hall", Status: models.StatusBooked},
			"theirs":  {ID: "theirs", UID: "cust-2", PropertyID: "hall", Status: models.StatusCompleted},
		}},
		Properties: props,
		Logger:     zap.NewNop(),
	}, props
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var be *booking.Error
	require.ErrorAs(t, err, &be)
	return be.Code
}

func TestRateCompletedBooking(t *testing.T) {
	svc, props := newTestRatingService()
	ctx := context.Background()

	r, err := svc.Rate(ctx, asha, RateInput{BookingID: "done", Rating: 5, Review: "  lovely  "})
	require.NoError(t, err)
	assert.Equal(t, "hall", r.PropertyID)
	assert.Equal(t, "lovely", r.Review)
	assert.Equal(t, "Asha", r.CustomerName)

	_, err = svc.Rate(ctx, asha, RateInput{BookingID: "done2", Rating: 2})
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Average: 3.5, Count: 2}, props.stats["hall"])

	_, err = svc.Rate(ctx, asha, RateInput{BookingID: "done", Rating: 4})
	assert.Equal(t, "alreadyRated", codeOf(t, err))
	assert.Equal(t, booking.KindConflict, booking.KindOf(err))
}

func TestRateValidation(t *testing.T) {
	svc, _ := newTestRatingService()
	ctx := context.Background()

	tests := []struct {
		in   RateInput
		code string
	}{
		{RateInput{Rating: 3}, "missingBookingId"},
		{RateInput{BookingID: "done", Rating: 0}, "invalidRating"},
		{RateInput{BookingID: "done", Rating: 6}, "invalidRating"},
		{RateInput{BookingID: "done", Rating: 3, Review: strings.Repeat("é", 501)}, "reviewTooLong"},
		{RateInput{BookingID: "pending", Rating: 3}, "notRateable"},
		{RateInput{BookingID: "theirs", Rating: 3}, "notRateable"},
		{RateInput{BookingID: "missing", Rating: 3}, "notRateable"},
	}
	for _, tt := range tests {
		_, err := svc.Rate(ctx, asha, tt.in)
		assert.Equal(t, tt.code, codeOf(t, err), tt.in.BookingID)
	}

	_, err := svc.Rate(ctx, asha, RateInput{BookingID: "done", Rating: 3, Review: strings.Repeat("é", 500)})
	assert.NoError(t, err)
}

func TestCanRate(t *testing.T) {
	svc, _ := newTestRatingService()
	ctx := context.Background()

	ok, err := svc.CanRate(ctx, asha, "done")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanRate(ctx, asha, "pending")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Rate(ctx, asha, RateInput{BookingID: "done", Rating: 4})
	require.NoError(t, err)
	ok, err = svc.CanRate(ctx, asha, "done")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := svc.ListForProperty(ctx, "hall")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
