package rating

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"spacebook/database"
	"spacebook/database/repository"
	"spacebook/models"
	"spacebook/services/booking"

	"go.uber.org/zap"
)

const maxReviewLength = 500

// RateInput is a customer's review of one booking.
type RateInput struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
}

type RatingService interface {
	Rate(ctx context.Context, caller models.Caller, in RateInput) (*models.Rating, error)
	CanRate(ctx context.Context, caller models.Caller, bookingID string) (bool, error)
	ListForProperty(ctx context.Context, propertyID string) ([]models.Rating, error)
}

type DefaultRatingService struct {
	Ratings    repository.RatingRepository
	Bookings   repository.BookingRepository
	Properties repository.PropertyRepository
	Logger     *zap.Logger
}

func NewRatingService(repos *repository.Repositories, logger *zap.Logger) *DefaultRatingService {
	return &DefaultRatingService{
		Ratings:    repos.Ratings,
		Bookings:   repos.Bookings,
		Properties: repos.Properties,
		Logger:     logger,
	}
}

func invalid(code, msg string) error {
	return &booking.Error{Kind: booking.KindValidation, Code: code, Message: msg}
}

// rateableBooking returns the caller's completed booking.
func (s *DefaultRatingService) rateableBooking(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, invalid("notRateable", "booking not found or not completed")
		}
		return nil, &booking.Error{Kind: booking.KindInternal, Code: "serverError", Message: "failed to load booking", Err: err}
	}
	if b.UID != caller.UID || b.Status != models.StatusCompleted {
		return nil, invalid("notRateable", "booking not found or not completed")
	}
	return b, nil
}

func (s *DefaultRatingService) Rate(ctx context.Context, caller models.Caller, in RateInput) (*models.Rating, error) {
	if in.BookingID == "" {
		return nil, invalid("missingBookingId", "booking id is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("invalidRating", "rating must be between 1 and 5")
	}
	review := strings.TrimSpace(in.Review)
	if utf8.RuneCountInString(review) > maxReviewLength {
		return nil, invalid("reviewTooLong", "review cannot exceed 500 characters")
	}

	b, err := s.rateableBooking(ctx, caller, in.BookingID)
	if err != nil {
		return nil, err
	}

	r := &models.Rating{
		PropertyID:   b.PropertyID,
		CustomerID:   caller.UID,
		CustomerName: b.UserName,
		BookingID:    b.ID,
		Rating:       in.Rating,
		Review:       review,
	}
	if err := s.Ratings.Create(ctx, r); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, &booking.Error{Kind: booking.KindConflict, Code: "alreadyRated", Message: "rating already submitted for this booking"}
		}
		return nil, &booking.Error{Kind: booking.KindInternal, Code: "serverError", Message: "failed to save rating", Err: err}
	}

	s.refreshPropertyStats(ctx, b.PropertyID)
	return r, nil
}

// refreshPropertyStats recomputes the property average. Failures only leave the
// cached figures stale, so they are logged.
func (s *DefaultRatingService) refreshPropertyStats(ctx context.Context, propertyID string) {
	summary, err := s.Ratings.Summary(ctx, propertyID)
	if err != nil {
		s.Logger.Error("Failed to aggregate ratings", zap.String("propertyId", propertyID), zap.Error(err))
		return
	}
	if err := s.Properties.UpdateRatingStats(ctx, propertyID, summary); err != nil {
		s.Logger.Error("Failed to update property rating", zap.String("propertyId", propertyID), zap.Error(err))
	}
}

func (s *DefaultRatingService) CanRate(ctx context.Context, caller models.Caller, bookingID string) (bool, error) {
	if _, err := s.rateableBooking(ctx, caller, bookingID); err != nil {
		if booking.KindOf(err) == booking.KindValidation {
			return false, nil
		}
		return false, err
	}
	_, err := s.Ratings.GetByBooking(ctx, bookingID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return true, nil
	case err != nil:
		return false, &booking.Error{Kind: booking.KindInternal, Code: "serverError", Message: "failed to check rating", Err: err}
	}
	return false, nil
}

func (s *DefaultRatingService) ListForProperty(ctx context.Context, propertyID string) ([]models.Rating, error) {
	ratings, err := s.Ratings.ListByProperty(ctx, propertyID, 100)
	if err != nil {
		return nil, &booking.Error{Kind: booking.KindInternal, Code: "serverError", Message: "failed to list ratings", Err: err}
	}
	return ratings, nil
}
