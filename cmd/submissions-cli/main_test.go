package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-submissions/pkg/renderers/tui"
	"github.com/goliatone/go-submissions/pkg/submission"
)

func execute(t *testing.T, deps *dependencies, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(deps)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_Invalid(t *testing.T) {
	out, err := execute(t, nil, `{"title":"abc"}`, "validate", "--form", "todo")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}

	var got submission.Response
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := submission.Response{
		Error:            true,
		Reason:           submission.ValidationReason,
		ValidationErrors: map[string][]string{"title": {"is less than required minimum of 5 characters"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Contexts(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		invalid bool
	}{
		{name: "valid todo", args: []string{"--form", "todo"}, stdin: `{"title":"Write the docs"}`},
		{name: "absent title on create", args: []string{"--form", "todo"}, stdin: `{}`, invalid: true},
		{name: "absent title on update", args: []string{"--form", "todo", "--context", "update"}, stdin: `{}`},
		{name: "taken username", args: []string{"--form", "user", "--taken", "ada"}, stdin: `{"name":"Ada","username":"ada","email":"ada@example.com"}`, invalid: true},
		{name: "free username", args: []string{"--form", "user", "--taken", "bob"}, stdin: `{"name":"Ada","username":"ada","email":"ada@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, nil, tt.stdin, append([]string{"validate"}, tt.args...)...)
			switch {
			case tt.invalid && !errors.Is(err, errInvalid):
				t.Fatalf("expected errInvalid, got %v", err)
			case !tt.invalid && err != nil:
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_UnknownForm(t *testing.T) {
	_, err := execute(t, nil, `{}`, "validate", "--form", "invoice")
	if err == nil || !strings.Contains(err.Error(), `unknown form "invoice"`) {
		t.Fatalf("expected unknown form error, got %v", err)
	}
}

func TestRender_WithErrors(t *testing.T) {
	out, err := execute(t, nil, `{"title":"abc"}`, "render", "--form", "todo", "--file", "-", "--context", "create", "--action", "/todos/create")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<form action="/todos/create" method="POST" novalidate>`,
		`value="abc"`,
		"is less than required minimum of 5 characters",
		submission.ValidationReason,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_BlankUserForm(t *testing.T) {
	out, err := execute(t, nil, "", "render", "--form", "user")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`type="email"`, `<textarea`, `placeholder="you@example.com"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "submissions-errors") {
		t.Fatalf("blank form should not render errors:\n%s", out)
	}
}

func TestRender_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "422 body",
			body: `{"error":true,"reason":"Upstream rejected the user","validationErrors":{"data.username":["is reserved"],"plan":["Plan expired"]}}`,
			want: []string{"is reserved", "Upstream rejected the user", "Plan expired", `aria-invalid="true"`},
		},
		{
			name: "bare map",
			body: `{"/email":["Mailbox does not exist"]}`,
			want: []string{"Mailbox does not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "errors.json")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write errors: %v", err)
			}

			out, err := execute(t, nil, `{"name":"Ada","username":"root","email":"ada@example.com"}`,
				"render", "--form", "user", "--file", "-", "--errors", path)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Fatalf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRender_RejectsMalformedErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write errors: %v", err)
	}
	if _, err := execute(t, nil, "", "render", "--form", "todo", "--errors", path); err == nil {
		t.Fatalf("expected malformed error body to fail")
	}
}

type scriptedDriver struct {
	inputs  []string
	confirm []bool
	infos   []string
}

func (d *scriptedDriver) Ask(_ context.Context, q tui.Question) (string, error) {
	if q.Kind == tui.KindToggle {
		if len(d.confirm) == 0 {
			return "", errors.New("no confirm scripted")
		}
		next := d.confirm[0]
		d.confirm = d.confirm[1:]
		return strconv.FormatBool(next), nil
	}
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	if q.Check != nil {
		if err := q.Check(next); err != nil {
			return "", err
		}
	}
	return next, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestPrompt_RepromptsFailingFields(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"abc", "Write the docs"},
		confirm: []bool{true},
	}
	out, err := execute(t, &dependencies{driver: driver}, "", "prompt", "--form", "todo")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := map[string]any{"title": "Write the docs", "done": "true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infos) == 0 || driver.infos[0] != "1 field(s) need attention" {
		t.Fatalf("unexpected info messages: %v", driver.infos)
	}
}

func TestPrompt_GivesUp(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"abc", "abcd"},
		confirm: []bool{false},
	}
	_, err := execute(t, &dependencies{driver: driver}, "", "prompt", "--form", "todo", "--attempts", "2")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
}
