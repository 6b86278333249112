// Package metrics records validation passes as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-submissions/pkg/submission"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// Namespace prefixes every metric name.
const Namespace = "submissions"

// Recorder implements submission.Recorder.
type Recorder struct {
	passes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

var _ submission.Recorder = (*Recorder)(nil)

// NewRecorder registers the metrics with reg. A nil reg uses the default
// registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "validation_passes_total",
			Help:      "Validation passes by context and outcome.",
		}, []string{"context", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "validation_pass_duration_seconds",
			Help:      "Time spent validating a submission, async validators included.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"context"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "field_failures_total",
			Help:      "Fields that failed validation, by key.",
		}, []string{"key"}),
	}
}

// ObservePass implements submission.Recorder.
func (r *Recorder) ObservePass(vctx validation.Context, outcome submission.Outcome, elapsed time.Duration) {
	r.passes.WithLabelValues(vctx.String(), string(outcome)).Inc()
	r.duration.WithLabelValues(vctx.String()).Observe(elapsed.Seconds())
}

// ObserveFieldFailure implements submission.Recorder.
func (r *Recorder) ObserveFieldFailure(key string) {
	r.failures.WithLabelValues(key).Inc()
}
