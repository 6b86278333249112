package submission

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// Validator runs validation passes. It holds no per-request state and can be
// shared between requests.
type Validator struct {
	logger   *zap.Logger
	recorder Recorder
	extra    []field.Field
	now      func() time.Time
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

func (v *Validator) orDefault() *Validator {
	if v == nil {
		return New()
	}
	return v
}

// MakeFields returns the payload's fields followed by any additional fields
// and the validator's extra fields. A nil payload yields blank-form fields.
func MakeFields[E any](v *Validator, payload Submission[E], existing *E) []field.Field {
	v = v.orDefault()

	var fields []field.Field
	if payload != nil {
		fields = append(fields, payload.Fields(existing)...)
		if provider, ok := payload.(FieldsProvider[E]); ok {
			fields = append(fields, provider.AdditionalFields(existing)...)
		}
	}
	return append(fields, v.extra...)
}

// Validate runs one pass over the payload's fields in vctx. Every field is
// stored in cache and its errors are attached as they settle, so the cache
// can re-render the form afterwards. It returns nil, a *ValidationError, or
// the first hard error raised by a validator.
func Validate[E any](ctx context.Context, v *Validator, cache *field.Cache, payload Submission[E], vctx validation.Context, existing *E) error {
	v = v.orDefault()
	return v.ValidateFields(ctx, cache, vctx, MakeFields[E](v, payload, existing)...)
}

// ValidateFields is Validate for an already built field list. Passes can be
// repeated on the same cache; error lists for a key are then merged.
func (v *Validator) ValidateFields(ctx context.Context, cache *field.Cache, vctx validation.Context, fields ...field.Field) error {
	v = v.orDefault()
	if cache == nil {
		return errors.New("submission: field cache is required")
	}

	start := v.now()
	fields = v.dedupe(fields)
	for _, f := range fields {
		cache.SetField(f)
	}

	results := make([][]validation.Error, len(fields))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, f := range fields {
		pending := field.NewPending()
		cache.SetErrors(f.Key(), pending)

		group.Go(func() error {
			errs, err := f.Validate(groupCtx, vctx)
			if err != nil {
				pending.Fail(err)
				return err
			}
			pending.Resolve(errs)
			results[i] = errs
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		v.logger.Debug("validation pass aborted",
			zap.Stringer("context", vctx),
			zap.Error(err),
		)
		v.recorder.ObservePass(vctx, OutcomeError, v.now().Sub(start))
		return err
	}

	collected := make(map[string][]string, len(fields))
	for i, f := range fields {
		if len(results[i]) == 0 {
			continue
		}
		collected[f.Key()] = validation.Reasons(results[i])
		v.recorder.ObserveFieldFailure(f.Key())
	}

	verr := NewValidationError(collected)
	if verr == nil {
		v.logger.Debug("validation pass succeeded",
			zap.Stringer("context", vctx),
			zap.Int("fields", len(fields)),
		)
		v.recorder.ObservePass(vctx, OutcomeValid, v.now().Sub(start))
		return nil
	}

	v.logger.Debug("validation pass failed",
		zap.Stringer("context", vctx),
		zap.Strings("keys", verr.Keys()),
	)
	v.recorder.ObservePass(vctx, OutcomeInvalid, v.now().Sub(start))
	return verr
}

// dedupe keeps the last field for every key at the position of its first
// occurrence.
func (v *Validator) dedupe(fields []field.Field) []field.Field {
	index := make(map[string]int, len(fields))
	out := make([]field.Field, 0, len(fields))
	for _, f := range fields {
		if i, ok := index[f.Key()]; ok {
			v.logger.Warn("duplicate field key, last definition wins", zap.String("key", f.Key()))
			out[i] = f
			continue
		}
		index[f.Key()] = len(out)
		out = append(out, f)
	}
	return out
}

// CreateValid validates payload in the Create context and builds the new
// entity when it passes.
func CreateValid[E any](ctx context.Context, v *Validator, cache *field.Cache, payload Creator[E]) (E, error) {
	var zero E
	if err := Validate[E](ctx, v, cache, payload, validation.Create, nil); err != nil {
		return zero, err
	}
	entity, err := payload.Create()
	if err != nil {
		return zero, err
	}
	return entity, nil
}

// UpdateValid validates payload in the Update context against existing and
// applies it to a copy of existing when it passes. existing is not modified.
func UpdateValid[E any](ctx context.Context, v *Validator, cache *field.Cache, payload Updater[E], existing *E) (E, error) {
	var zero E
	if existing == nil {
		return zero, ErrMissingEntity
	}
	if err := Validate[E](ctx, v, cache, payload, validation.Update, existing); err != nil {
		return zero, err
	}
	updated := *existing
	if err := payload.Apply(&updated); err != nil {
		return zero, err
	}
	return updated, nil
}

// PopulateFrom stores the fields of form for existing in cache without
// validating them. It prepares edit forms.
func PopulateFrom[E any](v *Validator, cache *field.Cache, form Submission[E], existing *E) {
	if cache == nil {
		return
	}
	v = v.orDefault()
	cache.Populate(v.dedupe(MakeFields[E](v, form, existing))...)
}

// BlankFields prepares a blank New form: labels and required flags only, no
// values and no errors. form is usually a typed nil payload.
func BlankFields[E any](v *Validator, cache *field.Cache, form Submission[E]) {
	PopulateFrom[E](v, cache, form, nil)
}

// CollectErrors turns everything accumulated in cache into a single result,
// which is how several passes over one request are combined.
func CollectErrors(ctx context.Context, cache *field.Cache) error {
	all, err := cache.AwaitAll(ctx)
	if err != nil {
		return err
	}
	if verr := NewValidationError(all); verr != nil {
		return verr
	}
	return nil
}
