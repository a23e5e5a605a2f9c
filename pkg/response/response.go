// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/nba-totals/internal/nbaapi"
	"github.com/maxviazov/nba-totals/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
	RequestID   string               `json:"request_id,omitempty"`
}

// MapError converts a domain / upstream error into an HTTP status and payload.
// Upstream failures surface as 502 with a code per failure kind so clients can tell them apart.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}
	if errors.Is(err, nbaapi.ErrInvalidQuery) {
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_input", Message: err.Error()}
	}

	if errors.Is(err, service.ErrNotFound) || nbaapi.IsNotFound(err) {
		return http.StatusNotFound, ErrorPayload{Error: "not_found", Message: err.Error()}
	}

	if te, ok := nbaapi.AsTransportError(err); ok {
		if te.Timeout() {
			return http.StatusGatewayTimeout, ErrorPayload{Error: "upstream_timeout", Message: "upstream did not answer in time"}
		}
		return http.StatusBadGateway, ErrorPayload{Error: "upstream_unreachable", Message: "upstream could not be reached"}
	}
	if _, ok := nbaapi.AsDecodeError(err); ok {
		return http.StatusBadGateway, ErrorPayload{Error: "upstream_bad_payload", Message: "upstream returned an unreadable body"}
	}
	if se, ok := nbaapi.AsStatusError(err); ok {
		return http.StatusBadGateway, ErrorPayload{Error: "upstream_status", Message: http.StatusText(se.StatusCode)}
	}

	if errors.Is(err, context.Canceled) {
		// client went away; the status is never seen but keeps access logs honest
		return 499, ErrorPayload{Error: "canceled"}
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	payload.RequestID = c.GetString(RequestIDKey)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// RequestIDKey is the gin context key the request ID middleware stores under.
const RequestIDKey = "request_id"
