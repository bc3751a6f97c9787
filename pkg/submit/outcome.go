package submit

import (
	"github.com/goliatone/go-joinform/pkg/validation"
)

// State is a step of the submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a submission.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Kind classifies an Outcome. Validation kinds are carried over unchanged.
type Kind string

const (
	KindNone                 = Kind(validation.KindNone)
	KindMissingRequiredField = Kind(validation.KindMissingRequiredField)
	KindInvalidFormat        = Kind(validation.KindInvalidFormat)
	KindTransportFailure     Kind = "transport_failure"
	KindServerRejection      Kind = "server_rejection"
	KindInFlight             Kind = "in_flight"
)

// User-facing messages for the send step.
const (
	MessageSuccess     = "Employee details submitted successfully!"
	MessageSendFailure = "Please Enter correct details."
	MessageInFlight    = "A submission is already in progress. Please wait."
)

// Outcome reports how a Submit call ended.
type Outcome struct {
	State      State
	Kind       Kind
	Message    string
	Validation validation.Result
	Err        error
	RequestID  string
	StatusCode int
}

// Succeeded reports whether the record reached the backend.
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}

// ValidationFailed reports whether the record never left the process
// because a check failed.
func (o Outcome) ValidationFailed() bool {
	return o.Kind == KindMissingRequiredField || o.Kind == KindInvalidFormat
}
