package render

import (
	"context"

	"github.com/goliatone/go-submissions/pkg/field"
)

// Renderer turns a form layout and the field state of one request into
// output (HTML, terminal prompts, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, cache *field.Cache) ([]byte, error)
}

// Form describes which tags make up a form and where it submits to.
type Form struct {
	Action string
	Method string
	Fields []FormField
	Hidden []HiddenField
	// Errors are form-level messages, e.g. ErrorMapping.Form.
	Errors []string
}

// FormField places one tag in a Form.
type FormField struct {
	Key     string
	Tag     string
	Options TagOptions
}

// Keys returns the field keys of f in layout order.
func (f Form) Keys() []string {
	keys := make([]string, 0, len(f.Fields))
	for _, ff := range f.Fields {
		keys = append(keys, ff.Key)
	}
	return keys
}
