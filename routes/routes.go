package routes

import (
	"net/http"
	"time"

	"spacebook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking core.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bh := hb.Bookings
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(hb.Auth)
		bookingGroup.POST("", bh.CreateBooking)
		bookingGroup.POST("/check-availability", bh.CheckAvailability)
		bookingGroup.POST("/check-bulk-availability", bh.CheckBulkAvailability)
		bookingGroup.POST("/calculate-price", bh.CalculatePrice)
		bookingGroup.GET("/:id", bh.GetBooking)
		bookingGroup.PUT("/:id/status", bh.UpdateStatus)
		bookingGroup.PUT("/:id/reschedule", bh.RescheduleBooking)
		bookingGroup.PUT("/:id/cancel", bh.CancelBooking)
		bookingGroup.PUT("/:id/payment", bh.UpdatePayment)
		bookingGroup.GET("/:id/transactions", bh.GetTransactions)
	}
}

// RegisterRatingRoutes sets up rating endpoints. Listing a property's ratings is public.
func RegisterRatingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	ratings := r.Group("/api/ratings")
	{
		ratings.GET("/property/:propertyId", hb.Ratings.ListForProperty)

		protected := ratings.Group("")
		protected.Use(hb.Auth)
		protected.POST("", hb.Ratings.CreateRating)
		protected.GET("/can-rate/:bookingId", hb.Ratings.CanRate)
	}
}

func RegisterFavoriteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	favorites := r.Group("/api/favorites")
	{
		favorites.Use(hb.Auth)
		favorites.POST("", hb.Favorites.AddFavorite)
		favorites.GET("", hb.Favorites.ListFavorites)
		favorites.GET("/check/:propertyId", hb.Favorites.CheckFavorite)
		favorites.DELETE("/:propertyId", hb.Favorites.RemoveFavorite)
	}
}

func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	users := r.Group("/api/users")
	users.Use(hb.Auth)
	users.PUT("/fcm-token", hb.Notifications.RegisterFCMToken)

	notifications := r.Group("/api/notifications")
	{
		notifications.Use(hb.Auth)
		notifications.GET("", hb.Notifications.ListNotifications)
		notifications.PUT("/:id/read", hb.Notifications.MarkRead)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.Health == nil {
		r.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm spacebook"})
		})
		return
	}
	r.GET("/health", hb.Health.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
	RegisterFavoriteRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
