// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/tracking"
	"github.com/tomtom215/otto/internal/validation"
	"github.com/tomtom215/otto/internal/vehicle"
)

// APIResponse is the envelope for every API response.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    APIMeta   `json:"meta"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// APIMeta carries response metadata.
type APIMeta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeInvalidArgument  = "INVALID_ARGUMENT"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeNotReady         = "NOT_READY"
)

// ResponseWriter writes enveloped JSON responses.
type ResponseWriter struct {
	w   http.ResponseWriter
	r   *http.Request
	now func() time.Time
}

// NewResponseWriter creates a new response writer.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, now: time.Now}
}

// Success writes a 200 response with data.
func (rw *ResponseWriter) Success(data any) {
	rw.Status(http.StatusOK, data)
}

// Status writes a successful response with an explicit status code.
func (rw *ResponseWriter) Status(statusCode int, data any) {
	rw.writeJSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Meta:    rw.meta(),
	})
}

// Error writes an error response with the given status code.
func (rw *ResponseWriter) Error(statusCode int, code, message string) {
	rw.ErrorWithDetails(statusCode, code, message, nil)
}

// ErrorWithDetails writes an error response with additional details.
func (rw *ResponseWriter) ErrorWithDetails(statusCode int, code, message string, details any) {
	rw.writeJSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: rw.meta(),
	})
}

// BadRequest writes a 400 INVALID_ARGUMENT error.
func (rw *ResponseWriter) BadRequest(message string) {
	rw.Error(http.StatusBadRequest, ErrCodeInvalidArgument, message)
}

// NotFound writes a 404 Not Found error.
func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError writes a 500 Internal Server Error.
func (rw *ResponseWriter) InternalError(message string) {
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ValidationFailed writes a 400 VALIDATION_ERROR from validator output.
func (rw *ResponseWriter) ValidationFailed(verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	var details any
	if len(apiErr.Details) > 0 {
		details = apiErr.Details
	}
	rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, details)
}

// DomainError maps an error from the domain packages to a response:
// invalid arguments are 400, unknown vehicles and users are 404, and
// everything else is a 500 whose message is logged but not returned.
func (rw *ResponseWriter) DomainError(err error) {
	switch {
	case vehicle.IsInvalidArgument(err):
		rw.BadRequest(err.Error())
	case vehicle.IsNotFound(err):
		rw.NotFound(err.Error())
	case errors.Is(err, tracking.ErrProfileNotFound):
		rw.NotFound("no activity recorded for user")
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).
			Str("path", rw.r.URL.Path).
			Msg("Request failed")
		rw.InternalError("internal error")
	}
}

func (rw *ResponseWriter) meta() APIMeta {
	return APIMeta{
		Timestamp: rw.now().UTC(),
		RequestID: logging.RequestIDFromContext(rw.r.Context()),
	}
}

// writeJSON writes JSON response with proper headers.
func (rw *ResponseWriter) writeJSON(statusCode int, data any) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(statusCode)

	if err := json.NewEncoder(rw.w).Encode(data); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}
