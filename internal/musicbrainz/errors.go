package musicbrainz

import (
	"errors"
	"fmt"
)

// Kind classifies a failed work lookup.
type Kind int

const (
	// KindNotFound means the work id does not exist on the service.
	// Never retried.
	KindNotFound Kind = iota

	// KindServiceUnavailable means the service reported a transient
	// failure (503, 429, network error). Retried up to the attempt
	// limit, then returned as the terminal classification.
	KindServiceUnavailable

	// KindMalformed means the response could not be interpreted
	// (unexpected status, undecodable body, wrong work id echoed back).
	// Never retried; treated like not-found for traversal purposes but
	// logged distinctly.
	KindMalformed
)

// String returns the tag used in warnings and logs.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindServiceUnavailable:
		return "ServiceUnavailable"
	case KindMalformed:
		return "Malformed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LookupError is the error type returned by Client.LookupWork.
type LookupError struct {
	// Kind is the failure classification.
	Kind Kind

	// WorkID is the id whose lookup failed.
	WorkID string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("work %s: %s: %v", e.WorkID, e.Kind, e.Err)
	}
	return fmt.Sprintf("work %s: %s", e.WorkID, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or (0, false) when err is not
// a lookup error.
func KindOf(err error) (Kind, bool) {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a not-found lookup failure.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// IsServiceUnavailable reports whether err is a transient service failure
// (or the terminal classification after retries were exhausted).
func IsServiceUnavailable(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindServiceUnavailable
}

// IsMalformed reports whether err is a malformed-response failure.
func IsMalformed(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindMalformed
}
