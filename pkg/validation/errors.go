package validation

import (
	"errors"
	"fmt"
)

// Error is a field-level, user-facing validation failure. It is an expected
// outcome of bad input and never signals a crash.
type Error struct {
	Reason string
}

func (e Error) Error() string {
	return e.Reason
}

// Errorf builds an Error from a format string.
func Errorf(format string, args ...any) Error {
	return Error{Reason: fmt.Sprintf(format, args...)}
}

// ErrAbsent is the default error for required values that are absent.
var ErrAbsent = Error{Reason: "is absent"}

// AsError reports whether err is (or wraps) a validation Error.
func AsError(err error) (Error, bool) {
	var target Error
	if errors.As(err, &target) {
		return target, true
	}
	var ptr *Error
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return Error{}, false
}

// Validator checks a present value. It returns nil when the value is valid, an
// Error when it is not, and any other error for failures that must abort the
// validation pass.
type Validator[T any] func(T) error

// Reasons flattens errors into their reason strings.
func Reasons(errs []Error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Reason)
	}
	return out
}
