// ABOUTME: Error type for non-2xx API responses and message extraction
// ABOUTME: Collapses every failure into one user-facing string with a fallback

package api

import (
	"errors"
	"fmt"
)

// Error is returned for any response outside the 2xx range.
type Error struct {
	Status  int
	Message string
	Path    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Path, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Path)
}

// Message returns the server-provided message carried by err, or fallback
// when err is not an *Error or the server sent no message.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
