// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by every endpoint so that
// success and failure bodies keep one shape. fail() logs 5xx responses with
// the request-scoped logger.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "reclamation not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/solrobto/reclamation-mytsinjo/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"reclamation not found"`
	// Offending fields for validation_failed
	Fields map[string]string `json:"fields,omitempty"`
	// Minutes before a new reminder is accepted, for reminder_cooldown
	RemainingMinutes *int `json:"remaining_minutes,omitempty" example:"12"`
}

// fail aborts the request with a structured error.
func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, ErrorResponse{Code: code, Message: msg})
}

// failWith aborts with resp, filling in the request id.
func failWith(c *gin.Context, status int, resp ErrorResponse) {
	resp.RequestID = c.Writer.Header().Get("X-Request-ID")

	if status >= http.StatusInternalServerError {
		middlewareLogger(c).Error().
			Int("status", status).
			Str("code", resp.Code).
			Str("error", resp.Message).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func middlewareLogger(c *gin.Context) *zerolog.Logger { return middleware.LoggerFrom(c) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func ok200(c *gin.Context, body any) { ok(c, http.StatusOK, body) }

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
