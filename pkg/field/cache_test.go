package field_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/validation"
)

func TestCacheFieldsOverwrite(t *testing.T) {
	cache := field.NewCache()
	cache.SetField(field.New(field.Config[string]{Key: "name", Value: ptr("first")}))
	cache.SetField(field.New(field.Config[string]{Key: "name", Value: ptr("second")}))

	f, ok := cache.Field("name")
	if !ok || *f.Value() != "second" {
		t.Fatalf("expected last write to win, got %v", f.Value())
	}
	if _, ok := cache.Field("missing"); ok {
		t.Fatalf("unexpected field")
	}
}

func TestCacheSetErrorsMerges(t *testing.T) {
	cache := field.NewCache()

	later := field.NewPending()
	cache.SetErrors("email", later)
	cache.SetErrors("email", field.Resolved(validation.Error{Reason: "must be unique"}))

	go func() {
		time.Sleep(5 * time.Millisecond)
		later.Resolve([]validation.Error{{Reason: "is not a valid email address"}})
	}()

	pending, ok := cache.Errors("email")
	if !ok {
		t.Fatalf("expected errors for email")
	}
	errs, err := pending.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}

	want := []string{"is not a valid email address", "must be unique"}
	if diff := cmp.Diff(want, validation.Reasons(errs)); diff != "" {
		t.Fatalf("merged errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheRepeatedPopulationIsDeterministic(t *testing.T) {
	run := func() map[string][]string {
		cache := field.NewCache()
		for range 2 {
			cache.SetErrors("name", field.Resolved(validation.Error{Reason: "too short"}))
			cache.SetErrors("email", field.Resolved())
		}
		all, err := cache.AwaitAll(context.Background())
		if err != nil {
			t.Fatalf("await: %v", err)
		}
		return all
	}

	want := map[string][]string{
		"name":  {"too short", "too short"},
		"email": {},
	}
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(want, run()); diff != "" {
			t.Fatalf("run %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestCacheAssertValid(t *testing.T) {
	ctx := context.Background()

	valid := field.NewCache()
	valid.SetErrors("name", field.Resolved())
	if err := valid.AssertValid(ctx); err != nil {
		t.Fatalf("expected valid cache, got %v", err)
	}

	invalid := field.NewCache()
	invalid.SetErrors("name", field.Resolved())
	invalid.SetErrors("title", field.Resolved(validation.Error{Reason: "is absent"}))
	if err := invalid.AssertValid(ctx); !errors.Is(err, field.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	boom := errors.New("lookup failed")
	failing := field.NewCache()
	failing.SetErrors("unique", field.Failed(boom))
	if err := failing.AssertValid(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected hard error, got %v", err)
	}
}

func TestMergePropagatesHardError(t *testing.T) {
	boom := errors.New("boom")
	merged := field.Merge(field.Resolved(validation.Error{Reason: "x"}), field.Failed(boom))
	if _, err := merged.Wait(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPendingWaitHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := field.NewPending().Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestPendingSettlesOnce(t *testing.T) {
	p := field.NewPending()
	p.Resolve([]validation.Error{{Reason: "first"}})
	p.Fail(errors.New("ignored"))
	p.Resolve([]validation.Error{{Reason: "ignored"}})

	errs, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"first"}, validation.Reasons(errs)); diff != "" {
		t.Fatalf("settled errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheKeysAndPopulate(t *testing.T) {
	cache := field.NewCache()
	cache.Populate(
		field.New(field.Config[string]{Key: "title"}),
		field.New(field.Config[string]{Key: "body"}),
	)
	cache.SetErrors("extra", field.Resolved())

	if diff := cmp.Diff([]string{"body", "extra", "title"}, cache.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if _, ok := cache.Errors("title"); ok {
		t.Fatalf("populate must not attach errors")
	}
}
