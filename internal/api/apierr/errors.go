package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeAlreadyConfigured     = "ALREADY_CONFIGURED"
	CodeNoAuthorityConfigured = "NO_AUTHORITY_CONFIGURED"
	CodeNotAuthority          = "NOT_AUTHORITY"
	CodeNoActiveSession       = "NO_ACTIVE_SESSION"
	CodeSessionNotFound       = "SESSION_NOT_FOUND"
	CodeStatsNotFound         = "STATS_NOT_FOUND"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrAlreadyConfigured):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyConfigured, "Authority shard already configured"}}
	case errors.Is(err, model.ErrNoAuthorityConfigured):
		return &httpError{http.StatusConflict, APIError{CodeNoAuthorityConfigured, "No authority shard configured"}}
	case errors.Is(err, model.ErrNotAuthority):
		return &httpError{http.StatusForbidden, APIError{CodeNotAuthority, "Only the authority shard can perform this action"}}
	case errors.Is(err, model.ErrNoActiveSession):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveSession, "No active game session"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrStatsNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeStatsNotFound, "No stats recorded yet"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
