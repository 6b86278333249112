package unique

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// Reason is reported for values that are already taken.
const Reason = "must be unique"

// Checker reports whether value is already taken.
type Checker interface {
	Exists(ctx context.Context, value string) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, value string) (bool, error)

// Exists implements Checker.
func (fn CheckerFunc) Exists(ctx context.Context, value string) (bool, error) {
	return fn(ctx, value)
}

// Option configures Validator.
type Option func(*options)

type options struct {
	reason    string
	except    []string
	fold      bool
	normalize func(string) string
}

// WithReason replaces Reason.
func WithReason(reason string) Option {
	return func(o *options) {
		if strings.TrimSpace(reason) != "" {
			o.reason = reason
		}
	}
}

// Except treats values as available, typically the entity's own current
// value during an update.
func Except(values ...string) Option {
	return func(o *options) {
		o.except = append(o.except, values...)
	}
}

// IgnoreCase lowercases the value before the lookup and the Except check.
func IgnoreCase() Option {
	return func(o *options) {
		o.fold = true
	}
}

// Normalize replaces the default strings.TrimSpace applied to the value and
// to Except values before comparing. It should match the normalisation used
// when the value is stored.
func Normalize(fn func(string) string) Option {
	return func(o *options) {
		if fn != nil {
			o.normalize = fn
		}
	}
}

func (o options) canonical(value string) string {
	value = o.normalize(value)
	if o.fold {
		value = strings.ToLower(value)
	}
	return value
}

// Validator checks value against checker. Absent or blank values pass; the
// field's required strategy decides whether they are acceptable. Lookup
// failures are hard errors.
func Validator(checker Checker, value *string, opts ...Option) field.AsyncValidator {
	cfg := options{reason: Reason, normalize: strings.TrimSpace}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	except := make(map[string]struct{}, len(cfg.except))
	for _, v := range cfg.except {
		except[cfg.canonical(v)] = struct{}{}
	}

	return func(ctx context.Context, _ validation.Context) ([]validation.Error, error) {
		if value == nil {
			return nil, nil
		}
		candidate := cfg.canonical(*value)
		if strings.TrimSpace(candidate) == "" {
			return nil, nil
		}
		if _, ok := except[candidate]; ok {
			return nil, nil
		}
		if checker == nil {
			return nil, fmt.Errorf("unique: checker is nil")
		}

		exists, err := checker.Exists(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("unique: lookup %q: %w", candidate, err)
		}
		if exists {
			return []validation.Error{{Reason: cfg.reason}}, nil
		}
		return nil, nil
	}
}
