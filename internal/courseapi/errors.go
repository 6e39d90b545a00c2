package courseapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable indicates the course API could not be reached.
	ErrUnavailable = errors.New("course api unavailable")

	// ErrMalformedResponse indicates a 2xx response whose body could not be decoded.
	ErrMalformedResponse = errors.New("malformed course api response")
)

// HTTPError is a non-2xx answer from the course API. Message holds the
// server's own explanation when the body carried one.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, msg)
}

// UserMessage is the text shown to the author for a failed save.
func (e *HTTPError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("the course service answered %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
