package submission

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-submissions/pkg/field"
)

// ValidationReason is the top level reason reported with every validation
// failure response.
const ValidationReason = "One or more fields failed to pass validation."

// ErrMissingEntity is returned when an update is attempted without the
// entity being updated.
var ErrMissingEntity = errors.New("submission: existing entity is required")

// ValidationError aggregates the failing fields of a pass. It only exists
// when at least one field has at least one reason.
type ValidationError struct {
	Errors map[string][]string
}

// NewValidationError keeps the non-empty lists of errs. It returns nil when
// none remain, meaning validation succeeded.
func NewValidationError(errs map[string][]string) *ValidationError {
	filtered := make(map[string][]string, len(errs))
	for key, reasons := range errs {
		if len(reasons) == 0 {
			continue
		}
		filtered[key] = append([]string(nil), reasons...)
	}
	if len(filtered) == 0 {
		return nil
	}
	return &ValidationError{Errors: filtered}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission: invalid fields: %s", strings.Join(e.Keys(), ", "))
}

// Is lets errors.Is(err, field.ErrInvalid) match aggregated failures.
func (e *ValidationError) Is(target error) bool {
	return target == field.ErrInvalid
}

// Keys returns the failing field keys, sorted.
func (e *ValidationError) Keys() []string {
	keys := make([]string, 0, len(e.Errors))
	for key := range e.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Response is the JSON body sent for a failed submission.
type Response struct {
	Error            bool                `json:"error"`
	Reason           string              `json:"reason"`
	ValidationErrors map[string][]string `json:"validationErrors"`
}

// Response renders e as the body of a 422 response.
func (e *ValidationError) Response() Response {
	return Response{
		Error:            true,
		Reason:           ValidationReason,
		ValidationErrors: e.Errors,
	}
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) && target != nil {
		return target, true
	}
	return nil, false
}
