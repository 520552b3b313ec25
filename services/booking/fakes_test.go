package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"spacebook/database"
	"spacebook/models"
	"spacebook/services/lock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	txns     []models.Transaction

	overlapErr error
	// beforeWrite runs before a conditional write, letting tests simulate a concurrent change.
	beforeWrite func(id string)
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) put(b models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = b
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBookingRepo) ExistsOverlap(ctx context.Context, propertyID string, from, to time.Time, excludeID string) (bool, error) {
	found, err := r.FindActiveOverlapping(ctx, propertyID, from, to)
	if err != nil {
		return false, err
	}
	for _, b := range found {
		if b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) FindActiveOverlapping(_ context.Context, propertyID string, from, to time.Time) ([]models.Booking, error) {
	if r.overlapErr != nil {
		return nil, r.overlapErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.PropertyID == propertyID && b.Status.IsActive() && b.Overlaps(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus, remark, updatedBy string, at time.Time) (*models.Booking, error) {
	if r.beforeWrite != nil {
		r.beforeWrite(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return nil, database.ErrStateChanged
	}
	b.Status = to
	b.AdminRemark = remark
	b.UpdatedBy = updatedBy
	b.UpdatedAt = at
	r.bookings[id] = b
	return &b, nil
}

func (r *fakeBookingRepo) Reschedule(_ context.Context, b *models.Booking, expected models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok || stored.Status != expected || stored.PaymentStatus != models.PaymentUnpaid {
		return database.ErrStateChanged
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) ApplyPayment(_ context.Context, b *models.Booking, expected models.PaymentStatus, txn *models.Transaction) error {
	if r.beforeWrite != nil {
		r.beforeWrite(b.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok || stored.PaymentStatus != expected {
		return database.ErrStateChanged
	}
	if txn.PaymentMode == models.PaymentModeCard {
		for _, t := range r.txns {
			if t.PaymentMode == models.PaymentModeCard && t.ReferenceNumber == txn.ReferenceNumber {
				return database.ErrDuplicate
			}
		}
	}
	r.bookings[b.ID] = *b
	r.txns = append(r.txns, *txn)
	return nil
}

func (r *fakeBookingRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeBookingRepo) ListByBooking(_ context.Context, bookingID string) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, t := range r.txns {
		if t.BookingID == bookingID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakePropertyRepo struct {
	props map[string]models.Property
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id string) (*models.Property, error) {
	p, ok := r.props[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (r *fakePropertyRepo) UpdateRatingStats(context.Context, string, models.RatingSummary) error {
	return nil
}

func (r *fakePropertyRepo) EnsureIndexes(context.Context) error { return nil }

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev models.BookingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []models.BookingEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.BookingEventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type stubCards struct {
	ok     bool
	err    error
	called int
}

func (c *stubCards) VerifyCardPayment(context.Context, string, float64) (bool, error) {
	c.called++
	return c.ok, c.err
}

var (
	testNow  = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	customer = models.Caller{UID: "cust-1", UserType: models.UserTypeCustomer, Name: "Asha"}
	stranger = models.Caller{UID: "cust-2", UserType: models.UserTypeCustomer}
	vendor   = models.Caller{UID: "vendor-1", UserType: models.UserTypeVendor}
	admin    = models.Caller{UID: "admin-1", UserType: models.UserTypeAdmin}
)

type testEnv struct {
	svc    *DefaultBookingService
	repo   *fakeBookingRepo
	props  *fakePropertyRepo
	events *recordingPublisher
}

func newTestEnv() *testEnv {
	repo := newFakeBookingRepo()
	props := &fakePropertyRepo{props: map[string]models.Property{
		"hall": {ID: "hall", VendorID: vendor.UID, Name: "Main Hall", Unit: models.UnitPerHour,
			Price: 100, MinAdvanceBookingAmount: 50, IsActive: true},
		"studio": {ID: "studio", VendorID: vendor.UID, Name: "Studio", Unit: models.UnitPerDay,
			Price: 500, DiscountAmount: 100, IsActive: true},
		"closed": {ID: "closed", VendorID: vendor.UID, Name: "Closed", Unit: models.UnitPerHour,
			Price: 100, IsActive: false},
	}}
	events := &recordingPublisher{}
	logger := zap.NewNop()
	svc := &DefaultBookingService{
		Bookings:     repo,
		Properties:   props,
		Transactions: repo,
		Detector:     NewConflictDetector(repo, logger),
		Locker:       lock.NewLocalLocker(),
		Events:       events,
		Logger:       logger,
		Location:     time.UTC,
		Now:          func() time.Time { return testNow },
	}
	return &testEnv{svc: svc, repo: repo, props: props, events: events}
}

func hallInput(fromHour, toHour int) models.CreateBookingInput {
	day := testNow.AddDate(0, 0, 1)
	return models.CreateBookingInput{
		PropertyID: "hall",
		UserName:   "Asha",
		MobileNo:   "9999999999",
		Email:      "asha@example.com",
		From:       time.Date(day.Year(), day.Month(), day.Day(), fromHour, 0, 0, 0, time.UTC),
		To:         time.Date(day.Year(), day.Month(), day.Day(), toHour, 0, 0, 0, time.UTC),
	}
}

func errCode(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func slotAt(id string, from, to time.Time) models.Slot {
	return models.Slot{ID: id, Start: from.Format(time.RFC3339), End: to.Format(time.RFC3339)}
}
