package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spacebook/database/repository"
	"spacebook/middleware"
	"spacebook/models"
	"spacebook/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService returns canned results and records what it was asked.
type stubBookingService struct {
	err        error
	booking    *models.Booking
	available  bool
	bulk       map[string]bool
	lastCaller models.Caller
	lastStatus models.BookingStatus
	lastInput  models.CreateBookingInput
}

func (s *stubBookingService) CalculatePrice(context.Context, string, time.Time, time.Time) (*models.PriceQuote, error) {
	return &models.PriceQuote{Duration: 2, DurationText: "2 hours", TotalAmount: 200}, s.err
}

func (s *stubBookingService) CheckAvailability(context.Context, string, time.Time, time.Time) (bool, error) {
	return s.available, s.err
}

func (s *stubBookingService) CheckBulkAvailability(context.Context, string, []models.Slot) (map[string]bool, error) {
	return s.bulk, s.err
}

func (s *stubBookingService) CreateBooking(_ context.Context, caller models.Caller, in models.CreateBookingInput) (*models.Booking, error) {
	s.lastCaller, s.lastInput = caller, in
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubBookingService) GetBooking(_ context.Context, caller models.Caller, _ string) (*models.Booking, error) {
	s.lastCaller = caller
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubBookingService) UpdateStatus(_ context.Context, caller models.Caller, _ string, status models.BookingStatus, _ string) (*models.Booking, error) {
	s.lastCaller, s.lastStatus = caller, status
	if s.err != nil {
		return nil, s.err
	}
	b := *s.booking
	b.Status = status
	return &b, nil
}

func (s *stubBookingService) CancelBooking(context.Context, models.Caller, string, string) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubBookingService) RescheduleBooking(context.Context, models.Caller, string, time.Time, time.Time) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubBookingService) UpdatePayment(_ context.Context, _ models.Caller, _ string, in models.PaymentUpdateInput) (*models.PaymentUpdateResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	b := *s.booking
	b.PaymentStatus = in.PaymentStatus
	return &models.PaymentUpdateResult{Booking: &b, Transaction: &models.Transaction{Amount: 200}}, nil
}

func (s *stubBookingService) GetTransactions(context.Context, models.Caller, string) ([]models.Transaction, error) {
	return []models.Transaction{{Amount: 100}, {Amount: 100}}, s.err
}

var testCaller = models.Caller{UID: "cust-1", UserType: models.UserTypeCustomer}

func newBookingRouter(svc booking.BookingService, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		if authenticated {
			middleware.SetCaller(c, testCaller)
		}
		c.Next()
	}
	hb := &HandlerBundle{Auth: auth, Bookings: NewBookingHandler(svc, zap.NewNop())}
	g := r.Group("/api/bookings", hb.Auth)
	g.POST("", hb.Bookings.CreateBooking)
	g.POST("/check-availability", hb.Bookings.CheckAvailability)
	g.POST("/check-bulk-availability", hb.Bookings.CheckBulkAvailability)
	g.GET("/:id", hb.Bookings.GetBooking)
	g.PUT("/:id/status", hb.Bookings.UpdateStatus)
	g.PUT("/:id/payment", hb.Bookings.UpdatePayment)
	g.GET("/:id/transactions", hb.Bookings.GetTransactions)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateBookingHandler(t *testing.T) {
	svc := &stubBookingService{booking: &models.Booking{ID: "b1", Status: models.StatusRequested}}
	r := newBookingRouter(svc, true)

	w := serve(r, http.MethodPost, "/api/bookings", `{
		"propertyId": "hall",
		"userName": "Asha",
		"mobileNo": "999",
		"email": "a@example.com",
		"bookforFromDateTime": "2030-01-02T09:00:00Z",
		"bookforToDateTime": "2030-01-02T11:00:00Z"
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, testCaller, svc.lastCaller)
	assert.Equal(t, "hall", svc.lastInput.PropertyID)
	assert.Equal(t, 9, svc.lastInput.From.Hour())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "b1", body["data"].(map[string]any)["id"])
}

func TestCreateBookingHandlerRejectsBadJSON(t *testing.T) {
	r := newBookingRouter(&stubBookingService{}, true)
	w := serve(r, http.MethodPost, "/api/bookings", `{"propertyId":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalidPayload", decode(t, w)["code"])
}

func TestHandlersRequireCaller(t *testing.T) {
	r := newBookingRouter(&stubBookingService{}, false)
	w := serve(r, http.MethodGet, "/api/bookings/b1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&booking.Error{Kind: booking.KindValidation, Code: "invalidRange"}, http.StatusBadRequest, "invalidRange"},
		{&booking.Error{Kind: booking.KindTransition, Code: "invalidStatusTransition"}, http.StatusBadRequest, "invalidStatusTransition"},
		{booking.ErrSlotUnavailable, http.StatusConflict, "slotUnavailable"},
		{&booking.Error{Kind: booking.KindNotFound, Code: "bookingNotFound"}, http.StatusNotFound, "bookingNotFound"},
		{&booking.Error{Kind: booking.KindForbidden, Code: "accessDenied"}, http.StatusForbidden, "accessDenied"},
		{&booking.Error{Kind: booking.KindInternal, Code: "serverError", Err: errors.New("db")}, http.StatusInternalServerError, "serverError"},
		{errors.New("raw"), http.StatusInternalServerError, "serverError"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			r := newBookingRouter(&stubBookingService{err: tt.err}, true)
			w := serve(r, http.MethodGet, "/api/bookings/b1", "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["code"])
		})
	}
}

func TestCheckAvailabilityHandler(t *testing.T) {
	r := newBookingRouter(&stubBookingService{available: false}, true)
	w := serve(r, http.MethodPost, "/api/bookings/check-availability",
		`{"propertyId":"hall","fromDateTime":"2030-01-02T09:00:00Z","toDateTime":"2030-01-02T10:00:00Z"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, true, body["data"].(map[string]any)["hasConflict"])
}

func TestCheckBulkAvailabilityHandler(t *testing.T) {
	r := newBookingRouter(&stubBookingService{bulk: map[string]bool{"a": true, "b": false}}, true)
	w := serve(r, http.MethodPost, "/api/bookings/check-bulk-availability", `{
		"propertyId": "hall",
		"slots": [
			{"id": "a", "start": "2030-01-02T09:00:00Z", "end": "2030-01-02T10:00:00Z"},
			{"id": "b", "start": "2030-01-02T10:00:00Z", "end": "2030-01-02T11:00:00Z"}
		]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["totalSlots"])
	assert.Equal(t, map[string]any{"a": true, "b": false}, data["availabilityMap"])
}

type hallBookings struct {
	repository.BookingRepository
	existing []models.Booking
}

func (h hallBookings) FindActiveOverlapping(context.Context, string, time.Time, time.Time) ([]models.Booking, error) {
	return h.existing, nil
}

type hallProperties struct {
	repository.PropertyRepository
}

func (hallProperties) GetByID(_ context.Context, id string) (*models.Property, error) {
	return &models.Property{ID: id, Unit: models.UnitPerHour, Price: 100, IsActive: true}, nil
}

func TestCheckBulkAvailabilityMalformedSlot(t *testing.T) {
	bookings := hallBookings{existing: []models.Booking{{
		ID:          "taken",
		Status:      models.StatusBooked,
		BookForFrom: time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC),
		BookForTo:   time.Date(2030, 1, 2, 11, 0, 0, 0, time.UTC),
	}}}
	svc := &booking.DefaultBookingService{
		Bookings:   bookings,
		Properties: hallProperties{},
		Detector:   booking.NewConflictDetector(bookings, zap.NewNop()),
		Logger:     zap.NewNop(),
		Location:   time.UTC,
	}
	r := newBookingRouter(svc, true)

	w := serve(r, http.MethodPost, "/api/bookings/check-bulk-availability", `{
		"propertyId": "hall",
		"slots": [
			{"id": "a", "start": "2030-01-02T09:00:00Z", "end": "2030-01-02T10:00:00Z"},
			{"id": "bad", "start": "not-a-date", "end": "2030-01-02T10:00:00Z"},
			{"id": "c", "start": "2030-01-02T10:30:00Z", "end": "2030-01-02T11:30:00Z"}
		]
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(3), data["totalSlots"])
	assert.Equal(t, map[string]any{"a": true, "bad": false, "c": false}, data["availabilityMap"])
}

func TestCheckBulkAvailabilityEmptySlots(t *testing.T) {
	svc := &booking.DefaultBookingService{
		Bookings:   hallBookings{},
		Properties: hallProperties{},
		Detector:   booking.NewConflictDetector(hallBookings{}, zap.NewNop()),
		Logger:     zap.NewNop(),
	}
	r := newBookingRouter(svc, true)

	w := serve(r, http.MethodPost, "/api/bookings/check-bulk-availability", `{"propertyId": "hall", "slots": []}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, map[string]any{}, data["availabilityMap"])

	w = serve(r, http.MethodPost, "/api/bookings/check-bulk-availability", `{"propertyId": "hall"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	svc := &stubBookingService{booking: &models.Booking{ID: "b1", Status: models.StatusRequested}}
	r := newBookingRouter(svc, true)

	w := serve(r, http.MethodPut, "/api/bookings/b1/status", `{"status":"Booked"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusBooked, svc.lastStatus)
	assert.Equal(t, "Booking status updated to Booked", decode(t, w)["message"])

	w = serve(r, http.MethodPut, "/api/bookings/b1/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentAndTransactionsHandlers(t *testing.T) {
	svc := &stubBookingService{booking: &models.Booking{ID: "b1", PaymentStatus: models.PaymentUnpaid}}
	r := newBookingRouter(svc, true)

	w := serve(r, http.MethodPut, "/api/bookings/b1/payment", `{"paymentStatus":"paid","paymentMode":"cash"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Payment status updated to paid", decode(t, w)["message"])

	w = serve(r, http.MethodGet, "/api/bookings/b1/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["count"])
}
