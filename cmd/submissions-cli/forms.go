package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-submissions/internal/demo"
	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/renderers/tui"
	"github.com/goliatone/go-submissions/pkg/unique"
)

// dependencies lets tests replace the terminal.
type dependencies struct {
	driver tui.PromptDriver
}

type formSpec struct {
	layout []render.FormField
	// build decodes a JSON payload into the form's fields. nil data yields
	// the blank form.
	build func(data []byte, taken unique.Checker) ([]field.Field, error)
}

var specs = map[string]formSpec{
	"todo": {
		layout: demo.TodoLayout,
		build: func(data []byte, _ unique.Checker) ([]field.Field, error) {
			if data == nil {
				return (*demo.TodoForm)(nil).Fields(nil), nil
			}
			var form demo.TodoForm
			if err := json.Unmarshal(data, &form); err != nil {
				return nil, fmt.Errorf("decode todo payload: %w", err)
			}
			return form.Fields(nil), nil
		},
	},
	"user": {
		layout: demo.UserLayout,
		build: func(data []byte, taken unique.Checker) ([]field.Field, error) {
			if data == nil {
				return (*demo.UserForm)(nil).Fields(nil), nil
			}
			form := demo.UserForm{Usernames: taken}
			if err := json.Unmarshal(data, &form); err != nil {
				return nil, fmt.Errorf("decode user payload: %w", err)
			}
			return form.Fields(nil), nil
		},
	},
}

func lookupSpec(name string) (formSpec, error) {
	spec, ok := specs[name]
	if !ok {
		names := make([]string, 0, len(specs))
		for key := range specs {
			names = append(names, key)
		}
		sort.Strings(names)
		return formSpec{}, fmt.Errorf("unknown form %q (want one of %s)", name, strings.Join(names, ", "))
	}
	return spec, nil
}

// takenChecker returns nil when no values are taken so the uniqueness check
// is skipped entirely.
func takenChecker(values []string) unique.Checker {
	if len(values) == 0 {
		return nil
	}
	return unique.NewMemory(values...)
}

// readPayload reads path, or in when path is "-". An empty path means no
// payload.
func readPayload(in io.Reader, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		return io.ReadAll(in)
	default:
		return os.ReadFile(path)
	}
}

// valuesJSON encodes prompt answers as a JSON payload. Checkbox answers
// become booleans.
func valuesJSON(layout []render.FormField, values map[string]string) ([]byte, error) {
	checkboxes := make(map[string]bool)
	for _, ff := range layout {
		if ff.Tag == render.TagCheckbox {
			checkboxes[ff.Key] = true
		}
	}

	payload := make(map[string]any, len(values))
	for key, value := range values {
		if checkboxes[key] {
			payload[key] = value == "true"
			continue
		}
		payload[key] = value
	}
	return json.Marshal(payload)
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
