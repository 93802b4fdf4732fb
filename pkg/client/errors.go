package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyProfile marks a first step response that decoded to nothing usable.
var ErrEmptyProfile = errors.New("client: empty profile")

// StatusError describes a non-2xx response. It is logged and absorbed at the
// transport boundary.
type StatusError struct {
	Code   int
	Method string
	URL    string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("client: %s %s: unexpected status %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
}

// StatusCode returns the HTTP status of the failed response.
func (e StatusError) StatusCode() int {
	return e.Code
}
