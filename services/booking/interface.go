package booking

import (
	"context"
	"time"

	"spacebook/database/repository"
	"spacebook/models"
	"spacebook/services/lock"

	"go.uber.org/zap"
)

// BookingService is the booking core: pricing, availability and the lifecycle.
type BookingService interface {
	CalculatePrice(ctx context.Context, propertyID string, from, to time.Time) (*models.PriceQuote, error)
	CheckAvailability(ctx context.Context, propertyID string, from, to time.Time) (bool, error)
	CheckBulkAvailability(ctx context.Context, propertyID string, slots []models.Slot) (map[string]bool, error)

	CreateBooking(ctx context.Context, caller models.Caller, in models.CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, caller models.Caller, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, caller models.Caller, id string, status models.BookingStatus, remark string) (*models.Booking, error)
	CancelBooking(ctx context.Context, caller models.Caller, id, remark string) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, caller models.Caller, id string, from, to time.Time) (*models.Booking, error)
	UpdatePayment(ctx context.Context, caller models.Caller, id string, in models.PaymentUpdateInput) (*models.PaymentUpdateResult, error)
	GetTransactions(ctx context.Context, caller models.Caller, id string) ([]models.Transaction, error)
}

// EventPublisher hands lifecycle events to the notification side. Implementations
// must not block on delivery and must not fail the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event models.BookingEvent)
}

// CardVerifier confirms a card payment with the processor.
type CardVerifier interface {
	VerifyCardPayment(ctx context.Context, reference string, amount float64) (bool, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings     repository.BookingRepository
	Properties   repository.PropertyRepository
	Transactions repository.TransactionRepository
	Detector     *ConflictDetector
	Locker       lock.Locker
	Events       EventPublisher
	Cards        CardVerifier
	Logger       *zap.Logger
	Location     *time.Location
	Now          func() time.Time
}

// NewBookingService wires the service. cards may be nil when no processor is configured.
func NewBookingService(
	repos *repository.Repositories,
	locker lock.Locker,
	events EventPublisher,
	cards CardVerifier,
	logger *zap.Logger,
	loc *time.Location,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings:     repos.Bookings,
		Properties:   repos.Properties,
		Transactions: repos.Transactions,
		Detector:     NewConflictDetector(repos.Bookings, logger),
		Locker:       locker,
		Events:       events,
		Cards:        cards,
		Logger:       logger,
		Location:     loc,
		Now:          time.Now,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
