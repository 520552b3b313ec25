package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers and the auth middleware guarding them.
type HandlerBundle struct {
	Auth gin.HandlerFunc

	Bookings      *BookingHandler
	Ratings       *RatingHandler
	Favorites     *FavoriteHandler
	Notifications *NotificationHandler
	Health        *HealthHandler
}
