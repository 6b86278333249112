package submission

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// Outcome classifies a finished validation pass.
type Outcome string

const (
	OutcomeValid   Outcome = "valid"
	OutcomeInvalid Outcome = "invalid"
	OutcomeError   Outcome = "error"
)

// Recorder observes validation passes. pkg/metrics provides a Prometheus
// implementation.
type Recorder interface {
	ObservePass(vctx validation.Context, outcome Outcome, elapsed time.Duration)
	ObserveFieldFailure(key string)
}

type nopRecorder struct{}

func (nopRecorder) ObservePass(validation.Context, Outcome, time.Duration) {}
func (nopRecorder) ObserveFieldFailure(string)                             {}

// Option customises a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithRecorder installs a pass recorder.
func WithRecorder(recorder Recorder) Option {
	return func(v *Validator) {
		if recorder != nil {
			v.recorder = recorder
		}
	}
}

// WithExtraFields appends fields to every pass, after the payload's own and
// additional fields.
func WithExtraFields(fields ...field.Field) Option {
	return func(v *Validator) {
		v.extra = append(v.extra, fields...)
	}
}

// WithClock overrides the time source used to measure passes.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}
