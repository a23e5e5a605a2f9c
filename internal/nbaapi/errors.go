package nbaapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrInvalidQuery marks query parameters rejected before any request is sent.
var ErrInvalidQuery = errors.New("nbaapi: invalid query")

// TransportError means the request never produced an HTTP response: DNS, connect, reset, timeout.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("nbaapi: transport failure for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline or client timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// DecodeError means the body did not have the expected JSON shape.
type DecodeError struct {
	Snippet string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nbaapi: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response that the call shape does not treat as "no data".
type StatusError struct {
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("nbaapi: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("nbaapi: unexpected status %d: %s", e.StatusCode, e.Snippet)
}

// NotFound reports the upstream's 404 convention.
func (e *StatusError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// AsTransportError unwraps err into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// AsDecodeError unwraps err into a DecodeError.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// AsStatusError unwraps err into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsNotFound reports whether err carries the upstream "not found" status.
// Callers use it instead of matching on error text.
func IsNotFound(err error) bool {
	se, ok := AsStatusError(err)
	return ok && se.NotFound()
}
