package validation

import (
	"fmt"
	"strings"
)

type contextKind uint8

const (
	kindNew contextKind = iota
	kindCreate
	kindUpdate
	kindCustom
)

// Context describes why a validation pass is running. It drives required-ness
// through RequiredStrategy and is handed to async validators so they can
// branch on it.
type Context struct {
	kind contextKind
	name string
}

var (
	// New is used to render a blank form. Absence never produces errors.
	New = Context{kind: kindNew}
	// Create validates a payload that will become a new entity.
	Create = Context{kind: kindCreate}
	// Update validates a payload that mutates an existing entity.
	Update = Context{kind: kindUpdate}
)

// Custom returns an application defined context.
func Custom(name string) Context {
	return Context{kind: kindCustom, name: strings.TrimSpace(name)}
}

// IsNew reports whether c is the blank-form context.
func (c Context) IsNew() bool { return c.kind == kindNew }

// IsCustom reports whether c was built with Custom.
func (c Context) IsCustom() bool { return c.kind == kindCustom }

// Name returns the custom context name, or "" for the built-in contexts.
func (c Context) Name() string { return c.name }

func (c Context) String() string {
	switch c.kind {
	case kindCreate:
		return "create"
	case kindUpdate:
		return "update"
	case kindCustom:
		return "custom:" + c.name
	default:
		return "new"
	}
}

// ParseContext is the inverse of Context.String. A bare unknown word is
// treated as a custom context name.
func ParseContext(raw string) (Context, error) {
	value := strings.TrimSpace(raw)
	switch strings.ToLower(value) {
	case "", "new":
		return New, nil
	case "create":
		return Create, nil
	case "update":
		return Update, nil
	}
	if name, ok := strings.CutPrefix(value, "custom:"); ok {
		if strings.TrimSpace(name) == "" {
			return Context{}, fmt.Errorf("validation: custom context name is required")
		}
		return Custom(name), nil
	}
	if strings.ContainsAny(value, " \t:") {
		return Context{}, fmt.Errorf("validation: invalid context %q", raw)
	}
	return Custom(value), nil
}
