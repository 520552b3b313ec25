package handlers

import (
	"net/http"
	"time"

	"spacebook/models"
	"spacebook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking core over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

type intervalRequest struct {
	PropertyID   string    `json:"propertyId"`
	FromDateTime time.Time `json:"fromDateTime"`
	ToDateTime   time.Time `json:"toDateTime"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), caller, in)
	if err != nil {
		respondError(c, h.Logger, "CreateBooking", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": b, "message": "Booking created successfully"})
}

func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	available, err := h.Service.CheckAvailability(c.Request.Context(), req.PropertyID, req.FromDateTime, req.ToDateTime)
	if err != nil {
		respondError(c, h.Logger, "CheckAvailability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"available": available,
		"data": gin.H{
			"propertyId":   req.PropertyID,
			"fromDateTime": req.FromDateTime,
			"toDateTime":   req.ToDateTime,
			"hasConflict":  !available,
		},
	})
}

func (h *BookingHandler) CheckBulkAvailability(c *gin.Context) {
	var req struct {
		PropertyID string        `json:"propertyId"`
		Slots      []models.Slot `json:"slots"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	availability, err := h.Service.CheckBulkAvailability(c.Request.Context(), req.PropertyID, req.Slots)
	if err != nil {
		respondError(c, h.Logger, "CheckBulkAvailability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"propertyId":      req.PropertyID,
			"totalSlots":      len(req.Slots),
			"availabilityMap": availability,
		},
	})
}

func (h *BookingHandler) CalculatePrice(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	quote, err := h.Service.CalculatePrice(c.Request.Context(), req.PropertyID, req.FromDateTime, req.ToDateTime)
	if err != nil {
		respondError(c, h.Logger, "CalculatePrice", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": quote})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	b, err := h.Service.GetBooking(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetBooking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": b})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
		Remark string               `json:"remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Service.UpdateStatus(c.Request.Context(), caller, c.Param("id"), req.Status, req.Remark)
	if err != nil {
		respondError(c, h.Logger, "UpdateStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": b, "message": "Booking status updated to " + string(b.Status)})
}

func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req struct {
		From time.Time `json:"bookforFromDateTime"`
		To   time.Time `json:"bookforToDateTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Service.RescheduleBooking(c.Request.Context(), caller, c.Param("id"), req.From, req.To)
	if err != nil {
		respondError(c, h.Logger, "RescheduleBooking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": b, "message": "Booking rescheduled successfully"})
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req struct {
		Remark string `json:"remark"`
	}
	// The body is optional.
	_ = c.ShouldBindJSON(&req)

	b, err := h.Service.CancelBooking(c.Request.Context(), caller, c.Param("id"), req.Remark)
	if err != nil {
		respondError(c, h.Logger, "CancelBooking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": b, "message": "Booking cancelled successfully"})
}

func (h *BookingHandler) UpdatePayment(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.PaymentUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.Service.UpdatePayment(c.Request.Context(), caller, c.Param("id"), in)
	if err != nil {
		respondError(c, h.Logger, "UpdatePayment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    res,
		"message": "Payment status updated to " + string(res.Booking.PaymentStatus),
	})
}

func (h *BookingHandler) GetTransactions(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	txns, err := h.Service.GetTransactions(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetTransactions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(txns), "data": txns})
}
