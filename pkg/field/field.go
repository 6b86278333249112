package field

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-submissions/pkg/validation"
)

// ErrPanicked wraps the value recovered from a validator that panicked.
var ErrPanicked = errors.New("validator panicked")

// AsyncValidator performs a check that may suspend, such as a uniqueness
// lookup. It closes over the value it checks and may branch on vctx. Returned
// validation errors are folded into the field's list; a non-nil error aborts
// the validation pass.
type AsyncValidator func(ctx context.Context, vctx validation.Context) ([]validation.Error, error)

// Config describes a field over a value of type T.
type Config[T any] struct {
	Key   string
	Label string
	// Value is nil when the submission did not carry one.
	Value *T

	Validators      []validation.Validator[T]
	AsyncValidators []AsyncValidator

	// Required marks the field as required for rendering and, unless
	// RequiredStrategy is set, requires a value on create and update.
	Required         bool
	RequiredStrategy validation.RequiredStrategy

	// ErrorOnAbsence replaces validation.ErrAbsent when a required value is
	// absent.
	ErrorOnAbsence validation.Error
	AbsentWhen     validation.AbsentValueStrategy[T]
}

// Field is a validated, renderable unit of submission data.
type Field struct {
	key      string
	label    string
	value    *string
	required bool
	validate func(ctx context.Context, vctx validation.Context) ([]validation.Error, error)
}

// New builds a Field from cfg. The value is resolved through the absence
// strategy once, so Value reports nil for values treated as absent.
func New[T any](cfg Config[T]) Field {
	present := cfg.AbsentWhen.Resolve(cfg.Value)

	strategy := cfg.RequiredStrategy
	if strategy == nil {
		strategy = validation.Never
		if cfg.Required {
			strategy = validation.OnCreateOrUpdate
		}
	}

	absenceErr := cfg.ErrorOnAbsence
	if strings.TrimSpace(absenceErr.Reason) == "" {
		absenceErr = validation.ErrAbsent
	}

	var display *string
	if present != nil {
		described := validation.Describe(*present)
		display = &described
	}

	validators := append([]validation.Validator[T](nil), cfg.Validators...)
	asyncValidators := append([]AsyncValidator(nil), cfg.AsyncValidators...)
	return Field{
		key:      cfg.Key,
		label:    cfg.Label,
		value:    display,
		required: cfg.Required,
		validate: func(ctx context.Context, vctx validation.Context) ([]validation.Error, error) {
			var errs []validation.Error
			switch {
			case present != nil:
				for _, check := range validators {
					if check == nil {
						continue
					}
					err := check(*present)
					if err == nil {
						continue
					}
					verr, ok := validation.AsError(err)
					if !ok {
						return nil, err
					}
					errs = append(errs, verr)
				}
			case !vctx.IsNew() && strategy.IsRequired(vctx):
				errs = append(errs, absenceErr)
			}

			asyncErrs, err := runAsync(ctx, cfg.Key, vctx, asyncValidators)
			if err != nil {
				return nil, err
			}
			return append(errs, asyncErrs...), nil
		},
	}
}

func runAsync(ctx context.Context, key string, vctx validation.Context, validators []AsyncValidator) ([]validation.Error, error) {
	if len(validators) == 0 {
		return nil, nil
	}

	results := make([][]validation.Error, len(validators))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, validator := range validators {
		if validator == nil {
			continue
		}
		group.Go(func() (err error) {
			defer recoverInto(key, &err)
			errs, err := validator(groupCtx, vctx)
			if err != nil {
				return err
			}
			results[i] = errs
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var out []validation.Error
	for _, errs := range results {
		out = append(out, errs...)
	}
	return out, nil
}

// recoverInto turns a panic in a validator of key into a hard error. Async
// validators run on their own goroutines, where nothing upstream can recover.
func recoverInto(key string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("field: validate %q: %w: %v", key, ErrPanicked, r)
	}
}

// Key returns the identifier used for the field in caches and error maps.
func (f Field) Key() string { return f.key }

// Label returns the display label, or "" when the field has none.
func (f Field) Label() string { return f.label }

// Value returns the canonical string form of the value, or nil when absent.
func (f Field) Value() *string {
	if f.value == nil {
		return nil
	}
	value := *f.value
	return &value
}

// IsRequired reports the static required flag used for rendering.
func (f Field) IsRequired() bool { return f.required }

// Validate runs the field's validators in vctx. It returns the ordered list of
// validation errors (synchronous validators first, then async validators in
// declaration order) or a hard error that must abort the pass.
// A panicking validator is reported as an error wrapping ErrPanicked.
func (f Field) Validate(ctx context.Context, vctx validation.Context) (errs []validation.Error, err error) {
	if f.validate == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			errs = nil
		}
	}()
	defer recoverInto(f.key, &err)
	return f.validate(ctx, vctx)
}

// ValueOf reads a property from an optional instance. It returns nil when
// instance is nil, which is how blank forms are built.
func ValueOf[S, T any](instance *S, get func(*S) T) *T {
	if instance == nil || get == nil {
		return nil
	}
	value := get(instance)
	return &value
}

// OptionalOf reads an optional property from an optional instance.
func OptionalOf[S, T any](instance *S, get func(*S) *T) *T {
	if instance == nil || get == nil {
		return nil
	}
	return get(instance)
}
