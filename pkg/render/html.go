package render

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-submissions/pkg/field"
)

// FormTemplate is the template HTMLRenderer wraps rendered tags with.
const FormTemplate = "fields/form"

// HTMLRenderer renders a whole form: every tag in layout order wrapped by
// FormTemplate. It receives "action", "method", "hidden", "errors" and
// "fields" (the rendered tags as HTML strings).
type HTMLRenderer struct {
	tags     *Tags
	template string
}

var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer wraps tags. An empty formTemplate uses FormTemplate.
func NewHTMLRenderer(tags *Tags, formTemplate string) *HTMLRenderer {
	if strings.TrimSpace(formTemplate) == "" {
		formTemplate = FormTemplate
	}
	return &HTMLRenderer{tags: tags, template: formTemplate}
}

// Name reports the renderer identifier.
func (r *HTMLRenderer) Name() string {
	return "html"
}

// ContentType reports the serialization format used by Render.
func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders form with the state of cache.
func (r *HTMLRenderer) Render(ctx context.Context, form Form, cache *field.Cache) ([]byte, error) {
	if r == nil || r.tags == nil {
		return nil, fmt.Errorf("render: html renderer has no tags")
	}

	rendered := make([]string, 0, len(form.Fields))
	for _, ff := range form.Fields {
		out, err := r.tags.Render(ctx, cache, ff.Tag, ff.Key, ff.Options)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, out)
	}

	method := strings.ToUpper(strings.TrimSpace(form.Method))
	hidden := form.Hidden
	switch method {
	case "", http.MethodGet, http.MethodPost:
	default:
		hidden = append(append([]HiddenField(nil), hidden...), MethodOverride(method))
		method = http.MethodPost
	}
	if method == "" {
		method = http.MethodPost
	}

	out, err := r.tags.renderer.RenderTemplate(r.template, map[string]any{
		"action": form.Action,
		"method": method,
		"hidden": SortedHiddenFields(MergeHiddenFields(nil, hidden...)),
		"errors": MergeFormErrors(form.Errors),
		"fields": rendered,
	})
	if err != nil {
		return nil, fmt.Errorf("render: form template %q: %w", r.template, err)
	}
	return []byte(out), nil
}
