package routes

import (
	"github.com/gin-gonic/gin"

	"slotbook/handlers"
	"slotbook/middleware"
)

// RegisterRoutes registers all endpoints of the booking engine.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, dh *handlers.DirectoryHandler) {
	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(middleware.RateLimitMiddleware())
	{
		api.GET("/directory", dh.GetDirectoryHandler)
		api.GET("/availability", dh.AvailabilityHandler)

		sessions := api.Group("/sessions/:clientID")
		{
			sessions.POST("/location", bh.ChooseLocationHandler)
			sessions.POST("/provider", bh.ChooseProviderHandler)
			sessions.POST("/date", bh.ChooseDateHandler)
			sessions.POST("/time", bh.ChooseTimeHandler)
			sessions.POST("/confirm", bh.ConfirmHandler)
			sessions.POST("/cancel", bh.CancelBookingHandler)
			sessions.GET("/bookings", bh.MyBookingsHandler)
		}
	}
}
