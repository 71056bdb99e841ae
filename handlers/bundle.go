package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers the router needs.
type HandlerBundle struct {
	// Health and metrics
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc

	// Booking endpoints
	ListBookings      gin.HandlerFunc
	GetBooking        gin.HandlerFunc
	ConfirmBooking    gin.HandlerFunc
	CancelBooking     gin.HandlerFunc
	StartBooking      gin.HandlerFunc
	RequestCompletion gin.HandlerFunc
	ConfirmCompletion gin.HandlerFunc

	// Admin endpoints
	FinalizeCompletion gin.HandlerFunc
}

// NewHandlerBundle wires the booking handler into a bundle.
func NewHandlerBundle(bh *BookingHandler, metrics gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		HealthHandler:      HealthHandler,
		MetricsHandler:     metrics,
		ListBookings:       bh.ListBookingsHandler,
		GetBooking:         bh.GetBookingHandler,
		ConfirmBooking:     bh.ConfirmBookingHandler,
		CancelBooking:      bh.CancelBookingHandler,
		StartBooking:       bh.StartBookingHandler,
		RequestCompletion:  bh.RequestCompletionHandler,
		ConfirmCompletion:  bh.ConfirmCompletionHandler,
		FinalizeCompletion: bh.FinalizeCompletionHandler,
	}
}
