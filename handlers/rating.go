package handlers

import (
	"net/http"

	"spacebook/services/rating"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RatingHandler struct {
	Service rating.RatingService
	Logger  *zap.Logger
}

func NewRatingHandler(svc rating.RatingService, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{Service: svc, Logger: logger}
}

func (h *RatingHandler) CreateRating(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in rating.RateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.Service.Rate(c.Request.Context(), caller, in)
	if err != nil {
		respondError(c, h.Logger, "CreateRating", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": r, "message": "Rating submitted successfully"})
}

func (h *RatingHandler) CanRate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	can, err := h.Service.CanRate(c.Request.Context(), caller, c.Param("bookingId"))
	if err != nil {
		respondError(c, h.Logger, "CanRate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "canRate": can})
}

func (h *RatingHandler) ListForProperty(c *gin.Context) {
	ratings, err := h.Service.ListForProperty(c.Request.Context(), c.Param("propertyId"))
	if err != nil {
		respondError(c, h.Logger, "ListForProperty", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(ratings), "data": ratings})
}
