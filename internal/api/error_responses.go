// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

const (
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrorCodeSearchFailed       ErrorCode = "SEARCH_FAILED"
	ErrorCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// APIError is the body of every error response.
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SendError writes an APIError with the given status.
func SendError(c *gin.Context, status int, code ErrorCode, message string) {
	resp := &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			resp.RequestID = s
		}
	}
	c.AbortWithStatusJSON(status, resp)
}

// SendInvalidJSONError reports a body that failed to decode.
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendValidationError reports a well-formed request with bad values.
func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, message)
}

// SendSearchError reports a failed backend search.
func SendSearchError(c *gin.Context, err error) {
	SendError(c, http.StatusBadGateway, ErrorCodeSearchFailed,
		"Search failed: "+err.Error())
}
