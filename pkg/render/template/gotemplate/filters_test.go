package gotemplate

import (
	"testing"

	"github.com/flosch/pongo2/v6"
)

func TestRegisterFilter_ReportsDuplicates(t *testing.T) {
	noop := func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) { return in, nil }

	if err := registerFilter("submissions_test_noop", noop); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := registerFilter("submissions_test_noop", noop); err == nil {
		t.Fatalf("expected an error when the filter already exists")
	}
}

func TestRegisterFilters_IsStable(t *testing.T) {
	if err := registerFilters(); err != nil {
		t.Fatalf("register filters: %v", err)
	}
	if err := registerFilters(); err != nil {
		t.Fatalf("repeated registration must not fail: %v", err)
	}
	if !pongo2.FilterExists("reasons") {
		t.Fatalf("reasons filter not registered")
	}
}
