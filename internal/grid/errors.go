package grid

import (
	"errors"
	"fmt"
)

// ErrStaleResponse is returned when an in-flight fetch resolves after a
// newer request was issued. It is an internal condition: callers should
// drop the result silently rather than surface it to the user.
var ErrStaleResponse = errors.New("stale response superseded by newer request")

// FetchError wraps a transport or HTTP failure from the persistence
// adapter. Op names the adapter call that failed ("get page", "save", ...).
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as a FetchError for the named adapter call.
func NewFetchError(op string, err error) *FetchError {
	return &FetchError{Op: op, Err: err}
}

// IsFetchError reports whether err is (or wraps) a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// ValidationError rejects a mutation before any state is touched.
// Field names the offending input; Reason is the user-visible message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
