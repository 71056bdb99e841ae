package handlers

import (
	"context"
	"net/http"
	"strconv"

	"petcare/middleware"
	"petcare/models"
	"petcare/services/access"
	"petcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingService is the part of the booking lifecycle the HTTP layer drives.
type BookingService interface {
	Get(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error)
	List(ctx context.Context, rc access.RequestContext, status models.BookingStatus, limit int) ([]models.Booking, error)
	Confirm(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error)
	Start(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error)
	RequestCompletion(ctx context.Context, bookingID string, rc access.RequestContext, evidence models.CompletionEvidence) (*models.Booking, error)
	ConfirmCompletion(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error)
	FinalizeCompletion(ctx context.Context, bookingID string) (*models.Booking, error)
}

type BookingHandler struct {
	Service BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CompletionRequest is the body of a completion request.
type CompletionRequest struct {
	Notes       string   `json:"notes"`
	Attachments []string `json:"attachments"`
}

type transitionFunc func(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error)

func (h *BookingHandler) respond(c *gin.Context, action string, run transitionFunc) {
	bookingID := c.Param("id")
	rc := middleware.RequestContextFrom(c)

	booking, err := run(c.Request.Context(), bookingID, rc)
	if err != nil {
		getLogger(c).Debug(action+" failed", zap.String("booking_id", bookingID), zap.Error(err))
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBookingHandler returns a booking to one of its participants.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	h.respond(c, "get booking", h.Service.Get)
}

// ListBookingsHandler lists the caller's bookings. Optional query
// parameters: status (one booking status) and limit.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.JSONError(c, http.StatusBadRequest, "invalid_input", "limit must be a positive integer", nil)
			return
		}
		limit = n
	}
	status := models.BookingStatus(c.Query("status"))
	rc := middleware.RequestContextFrom(c)

	bookings, err := h.Service.List(c.Request.Context(), rc, status, limit)
	if err != nil {
		getLogger(c).Debug("list bookings failed", zap.String("status", string(status)), zap.Error(err))
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	h.respond(c, "confirm booking", h.Service.Confirm)
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	h.respond(c, "cancel booking", h.Service.Cancel)
}

func (h *BookingHandler) StartBookingHandler(c *gin.Context) {
	h.respond(c, "start booking", h.Service.Start)
}

// RequestCompletionHandler expects {"notes": "...", "attachments": ["url", ...]}.
func (h *BookingHandler) RequestCompletionHandler(c *gin.Context) {
	var input CompletionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "Invalid completion request", map[string]any{"details": err.Error()})
		return
	}
	evidence := models.CompletionEvidence{Notes: input.Notes, Attachments: input.Attachments}
	h.respond(c, "request completion", func(ctx context.Context, id string, rc access.RequestContext) (*models.Booking, error) {
		return h.Service.RequestCompletion(ctx, id, rc, evidence)
	})
}

func (h *BookingHandler) ConfirmCompletionHandler(c *gin.Context) {
	h.respond(c, "confirm completion", h.Service.ConfirmCompletion)
}

// FinalizeCompletionHandler is the administrative trigger for settling a completion request.
func (h *BookingHandler) FinalizeCompletionHandler(c *gin.Context) {
	h.respond(c, "finalize completion", func(ctx context.Context, id string, _ access.RequestContext) (*models.Booking, error) {
		return h.Service.FinalizeCompletion(ctx, id)
	})
}
