package testsupport

import (
	"fmt"
	"sync"
	"testing"
)

// RenderCall captures a single template invocation.
type RenderCall struct {
	Name string
	Data any
}

// RecordingRenderer is a template renderer double. It records every call and
// returns Output(name, data) when set, otherwise "<name>".
type RecordingRenderer struct {
	mu     sync.Mutex
	calls  []RenderCall
	Output func(name string, data any) (string, error)
}

// RenderTemplate records the call and returns the canned output.
func (r *RecordingRenderer) RenderTemplate(name string, data any) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, RenderCall{Name: name, Data: data})
	r.mu.Unlock()

	if r.Output != nil {
		return r.Output(name, data)
	}
	return fmt.Sprintf("<%s>", name), nil
}

// Calls returns a copy of the recorded invocations.
func (r *RecordingRenderer) Calls() []RenderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RenderCall(nil), r.calls...)
}

// Last returns the most recent invocation, failing the test when none exist.
func (r *RecordingRenderer) Last(t *testing.T) RenderCall {
	t.Helper()
	calls := r.Calls()
	if len(calls) == 0 {
		t.Fatalf("expected at least one render call")
	}
	return calls[len(calls)-1]
}
