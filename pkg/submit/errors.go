package submit

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while another
	// submission is still running.
	ErrSubmissionInFlight = errors.New("submit: submission already in flight")
	// ErrNoEndpoint indicates the client was built without an endpoint URL.
	ErrNoEndpoint = errors.New("submit: endpoint not configured")
)

// RejectionError reports a response outside the 2xx range.
type RejectionError struct {
	StatusCode int
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("submit: endpoint rejected submission with status %d", e.StatusCode)
}

// TransportError reports a failure before a status code was obtained.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("submit: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
