package handlers

import (
	"errors"
	"net/http"

	"spacebook/middleware"
	"spacebook/models"
	"spacebook/services/booking"
	"spacebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var kindStatus = map[booking.ErrorKind]int{
	booking.KindValidation: http.StatusBadRequest,
	booking.KindTransition: http.StatusBadRequest,
	booking.KindConflict:   http.StatusConflict,
	booking.KindNotFound:   http.StatusNotFound,
	booking.KindForbidden:  http.StatusForbidden,
	booking.KindInternal:   http.StatusInternalServerError,
}

// respondError maps a service error onto its HTTP status. Internal errors are
// logged with their cause and reported without it.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var be *booking.Error
	if !errors.As(err, &be) {
		logger.Error(op+": unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Server error", "serverError")
		return
	}
	status, ok := kindStatus[be.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		logger.Error(op+": "+be.Message, zap.Error(be.Err))
	}
	utils.JSONError(c, status, be.Message, be.Code)
}

// requireCaller aborts with 401 when AuthMiddleware did not run.
func requireCaller(c *gin.Context) (models.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok || caller.UID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "unauthorized")
		return models.Caller{}, false
	}
	return caller, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "Invalid request payload", Code: "invalidPayload", Details: err.Error()})
}
