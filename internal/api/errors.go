package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnauthorized     = errors.New("api: unauthorized")
	ErrPermissionDenied = errors.New("api: permission denied")
	ErrRateLimited      = errors.New("api: rate limited")
)

// APIError is a non-2xx backend response, carrying the server-provided
// message when the body had one. errors.Is matches the sentinel for the
// status class, so callers can branch without touching the status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401
	case ErrPermissionDenied:
		return e.Status == 403
	case ErrRateLimited:
		return e.Status == 429
	}
	return false
}

// ErrorMessage extracts the server-provided message from err, or returns
// fallback when none is available. Used at the session boundary to turn
// failures into user-readable results.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorBody is the backend's error envelope. Some endpoints use "error",
// a few older ones use "message".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func messageFromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}
