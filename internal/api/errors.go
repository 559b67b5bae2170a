package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for 401 responses. It is terminal for the
// current operation; callers redirect to re-authentication instead of
// retrying.
var ErrUnauthorized = errors.New("authentication required or token rejected")

// StatusError is a non-2xx response from the backend, carrying the decoded
// server message when one was present.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}
