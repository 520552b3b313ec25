package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"spacebook/database"
	"spacebook/services/notification"
	"spacebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Service notification.NotificationService
	Logger  *zap.Logger
}

func NewNotificationHandler(svc notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Service: svc, Logger: logger}
}

func (h *NotificationHandler) RegisterFCMToken(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Service.RegisterToken(c.Request.Context(), caller, req.FCMToken); err != nil {
		h.Logger.Error("RegisterFCMToken: failed to store token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update FCM token", "serverError")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "FCM token updated successfully"})
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	items, err := h.Service.ListForUser(c.Request.Context(), caller.UID, limit)
	if err != nil {
		h.Logger.Error("ListNotifications: query failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch notifications", "serverError")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "data": items})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(c.Request.Context(), caller.UID, c.Param("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Notification not found", "notFound")
			return
		}
		h.Logger.Error("MarkRead: update failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update notification", "serverError")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
