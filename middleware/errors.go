package middleware

import (
	"errors"
	"net/http"

	"petcare/services/access"
	"petcare/services/booking"
	"petcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError maps access and booking errors onto HTTP responses and aborts.
func RespondError(c *gin.Context, err error) {
	var (
		authnErr   *access.AuthenticationError
		authzErr   *access.AuthorizationError
		invalidErr *booking.InvalidTransitionError
	)

	switch {
	case errors.As(err, &authnErr):
		utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", "Authentication required",
			map[string]any{"reason": string(authnErr.Reason)})
	case errors.As(err, &authzErr):
		utils.JSONError(c, http.StatusForbidden, "forbidden", authzErr.Error(),
			map[string]any{"reason": string(authzErr.Reason)})
	case errors.As(err, &invalidErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid_transition", invalidErr.Error(),
			map[string]any{"current": string(invalidErr.Current), "requested": string(invalidErr.Requested)})
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, booking.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, booking.ErrEvidenceRequired):
		utils.JSONError(c, http.StatusBadRequest, "evidence_required", err.Error(), nil)
	case errors.Is(err, booking.ErrInvalidStatusFilter):
		utils.JSONError(c, http.StatusBadRequest, "invalid_status", err.Error(), nil)
	default:
		utils.GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal", "An unexpected error occurred. Please try again later.", nil)
	}
}
