// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable; clients branch on them rather
// than on messages. writeServiceError is the single place where service
// errors become HTTP statuses.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "reminder_cooldown",
//	  "message": "reminder cooldown active, retry in 12 min",
//	  "remaining_minutes": 12
//	}
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/solrobto/reclamation-mytsinjo/internal/services"
)

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeValidation       = "validation_failed"
	ErrCodeInvalidStatus    = "invalid_status"
	ErrCodeInvalidState     = "invalid_state"
	ErrCodeAlreadyResolved  = "already_resolved"
	ErrCodeReminderCooldown = "reminder_cooldown"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// writeServiceError maps a service error onto the error envelope. Unknown
// errors become 500 with a generic message; the cause is logged.
func writeServiceError(c *gin.Context, err error) {
	var cd *services.CooldownError
	var ve *services.ValidationError

	switch {
	case errors.As(err, &cd):
		c.Header("Retry-After", strconv.Itoa(cd.RemainingMinutes*60))
		mins := cd.RemainingMinutes
		failWith(c, http.StatusTooManyRequests, ErrorResponse{
			Code:             ErrCodeReminderCooldown,
			Message:          cd.Error(),
			RemainingMinutes: &mins,
		})
	case errors.As(err, &ve):
		failWith(c, http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeValidation,
			Message: ve.Error(),
			Fields:  ve.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "reclamation not found")
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, ErrCodeInvalidStatus, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		fail(c, http.StatusBadRequest, ErrCodeInvalidState, err.Error())
	case errors.Is(err, services.ErrAlreadyResolved):
		fail(c, http.StatusConflict, ErrCodeAlreadyResolved, err.Error())
	default:
		middlewareLogger(c).Error().Err(err).Msg("unhandled service error")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
