package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/validation"
)

func ptr[T any](v T) *T { return &v }

func TestData_ReadsFieldAndErrors(t *testing.T) {
	cache := field.NewCache()
	cache.SetField(field.New(field.Config[string]{
		Key:      "name",
		Label:    "Name",
		Value:    ptr("M"),
		Required: true,
	}))
	cache.SetErrors("name", field.Resolved(validation.Error{Reason: "is less than required minimum of 2 characters"}))

	got, err := render.Data(context.Background(), cache, "name")
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	want := render.FieldData{
		Key:        "name",
		Value:      ptr("M"),
		Label:      ptr("Name"),
		IsRequired: true,
		Errors:     []string{"is less than required minimum of 2 characters"},
		HasErrors:  true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestData_UnknownKey(t *testing.T) {
	got, err := render.Data(context.Background(), field.NewCache(), "missing")
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	want := render.FieldData{Key: "missing", Errors: []string{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestData_HardError(t *testing.T) {
	boom := errors.New("lookup failed")
	cache := field.NewCache()
	cache.SetErrors("email", field.Failed(boom))

	if _, err := render.Data(context.Background(), cache, "email"); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

type planet struct {
	id   string
	name string
}

func (p planet) OptionID() string    { return p.id }
func (p planet) OptionValue() string { return p.name }

func TestMakeOptions(t *testing.T) {
	got := render.MakeOptions([]planet{
		{id: "earth", name: "Earth"},
		{id: "", name: "Nowhere"},
		{id: "mars"},
	})
	want := []render.Option{
		{ID: "earth", Value: "Earth"},
		{ID: "mars", Value: "mars"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsFrom(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []render.Option
	}{
		{name: "nil", raw: nil, want: nil},
		{name: "options", raw: []render.Option{{ID: "a", Value: "A"}}, want: []render.Option{{ID: "a", Value: "A"}}},
		{
			name: "maps from template data",
			raw: []any{
				map[string]any{"id": "a", "value": "A"},
				map[string]any{"id": "b"},
				map[string]any{"value": "skipped"},
			},
			want: []render.Option{{ID: "a", Value: "A"}, {ID: "b", Value: "b"}},
		},
		{
			name: "representable",
			raw:  []render.OptionRepresentable{planet{id: "venus", name: "Venus"}},
			want: []render.Option{{ID: "venus", Value: "Venus"}},
		},
		{name: "unsupported", raw: "a,b", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, render.OptionsFrom(tt.raw)); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
