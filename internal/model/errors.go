package model

import (
	"net/http"
	"strconv"
)

// HTTPError is a classified failure carrying the status, headers and
// plain-text body to send back to the submitter.
type HTTPError struct {
	Status int
	Header http.Header
	Body   string
}

// NewHTTPError returns an HTTPError with a text/plain content type.
func NewHTTPError(status int, body string) *HTTPError {
	return &HTTPError{
		Status: status,
		Header: http.Header{"Content-Type": {"text/plain"}},
		Body:   body,
	}
}

func (e *HTTPError) Error() string {
	return strconv.Itoa(e.Status) + " " + e.Body
}
