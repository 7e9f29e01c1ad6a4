package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable is returned when no HTTP response was received.
var ErrUnreachable = errors.New("backend unreachable")

// APIError is a response the backend answered with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports a backend 404.
func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

// IsConflict reports a backend 409.
func IsConflict(err error) bool { return StatusOf(err) == http.StatusConflict }

// MessageOf returns the backend-provided message of err, or fallback when there is none.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
