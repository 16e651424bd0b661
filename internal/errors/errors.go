package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBadRequest is returned when the request input is malformed or missing.
	ErrBadRequest = errors.New("invalid request")
	// ErrUnauthenticated is returned when no usable credential accompanies the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidToken is returned when a token fails signature or shape checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a structurally valid token has expired.
	ErrTokenExpired = errors.New("token expired")
	// ErrUserNotFound is returned when a token resolves to a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInsufficientCredit is returned when the credit balance cannot cover a generation.
	ErrInsufficientCredit = errors.New("insufficient credit balance")
	// ErrNotFound is returned for missing or foreign-owned resources.
	ErrNotFound = errors.New("resource not found")

	// Provider failure classes. None of these are retried; each is surfaced
	// to the caller with the balance untouched.
	ErrProviderAuth        = errors.New("provider rejected API credentials")
	ErrProviderRateLimited = errors.New("provider rate limit exceeded")
	ErrProviderBadRequest  = errors.New("provider rejected the request")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderTimeout     = errors.New("provider call timed out")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrBadRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrInsufficientCredit):
		return NewHTTPError(http.StatusPaymentRequired, err.Error(), "INSUFFICIENT_CREDIT")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrProviderAuth):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "PROVIDER_AUTH_ERROR")
	case errors.Is(err, ErrProviderRateLimited):
		return NewHTTPError(http.StatusTooManyRequests, err.Error(), "PROVIDER_RATE_LIMITED")
	case errors.Is(err, ErrProviderBadRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PROVIDER_BAD_REQUEST")
	case errors.Is(err, ErrProviderUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "PROVIDER_UNAVAILABLE")
	case errors.Is(err, ErrProviderTimeout):
		return NewHTTPError(http.StatusRequestTimeout, err.Error(), "PROVIDER_TIMEOUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
