package routes

import (
	"time"

	"petcare/handlers"
	"petcare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes registers the public health and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authz middleware.Authorizer) {
	r.GET("/health", middleware.Authorize(authz, OpHealth), hb.HealthHandler)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", middleware.Authorize(authz, OpMetrics), hb.MetricsHandler)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authz middleware.Authorizer) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.GET("", middleware.Authorize(authz, OpListBookings), hb.ListBookings)
		bookingGroup.GET("/:id", middleware.Authorize(authz, OpGetBooking), hb.GetBooking)
		bookingGroup.POST("/:id/confirm", middleware.Authorize(authz, OpConfirmBooking), hb.ConfirmBooking)
		bookingGroup.POST("/:id/cancel", middleware.Authorize(authz, OpCancelBooking), hb.CancelBooking)
		bookingGroup.POST("/:id/start", middleware.Authorize(authz, OpStartBooking), hb.StartBooking)
		bookingGroup.POST("/:id/request-completion", middleware.Authorize(authz, OpRequestCompletion), hb.RequestCompletion)
		bookingGroup.POST("/:id/complete", middleware.Authorize(authz, OpConfirmCompletion), hb.ConfirmCompletion)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authz middleware.Authorizer) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/bookings/:id/finalize", middleware.Authorize(authz, OpFinalizeCompletion), hb.FinalizeCompletion)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authz middleware.Authorizer) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r, hb, authz)
	RegisterBookingRoutes(r, hb, authz)
	RegisterAdminRoutes(r, hb, authz)
}
