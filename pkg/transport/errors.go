package transport

import (
	"fmt"
	"net/http"
)

// StatusError is returned by Call for any non-2xx response, and for 2xx
// responses whose envelope reports success=false.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Code       string // server error code from the envelope, if any
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("transport: %s %s: status %d (%s): %s", e.Method, e.Path, e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("transport: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// NotFound reports whether the server answered 404.
func (e *StatusError) NotFound() bool { return e.StatusCode == http.StatusNotFound }
