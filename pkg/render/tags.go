package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render/template"
)

// Tags renders field tags through a template renderer. A Tags value is safe
// for concurrent use; the cache passed to each call belongs to one request.
type Tags struct {
	renderer   template.TemplateRenderer
	paths      TemplatePaths
	registry   *Registry
	policy     *bluemonday.Policy
	translator Translator
	onMissing  MissingTranslationHandler
}

// NewTags creates a tag renderer.
func NewTags(renderer template.TemplateRenderer, opts ...TagsOption) (*Tags, error) {
	if renderer == nil {
		return nil, errors.New("render: template renderer is required")
	}
	t := &Tags{
		renderer: renderer,
		paths:    DefaultTemplatePaths(),
		registry: DefaultRegistry(),
		policy:   helpTextSanitizer(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t, nil
}

// Registry exposes the tag kinds known to t.
func (t *Tags) Registry() *Registry {
	return t.registry
}

// TemplatePath returns the template tag renders with.
func (t *Tags) TemplatePath(tag string) (string, error) {
	kind, err := t.registry.Get(tag)
	if err != nil {
		return "", err
	}
	if path, ok := t.paths.Path(tag); ok {
		return path, nil
	}
	return kind.Template, nil
}

// ViewData builds the record tag renders for key.
func (t *Tags) ViewData(ctx context.Context, cache *field.Cache, tag, key string, opts TagOptions) (any, error) {
	kind, err := t.registry.Get(tag)
	if err != nil {
		return nil, err
	}
	data, err := Data(ctx, cache, key)
	if err != nil {
		return nil, err
	}

	help := optionalString(sanitizeWith(t.policy, opts.HelpText))
	t.localize(ctx, &data, &help)

	switch kind.Shape {
	case ShapeFile:
		return FileData{
			FieldData: data,
			HelpText:  help,
			Accept:    optionalString(strings.Join(opts.Accept, ",")),
			Multiple:  opts.Multiple,
		}, nil
	case ShapeSelect:
		options := opts.Options
		if options == nil {
			options = []Option{}
		}
		return SelectData{
			FieldData:   data,
			Options:     options,
			Placeholder: optionalString(opts.Placeholder),
			HelpText:    help,
		}, nil
	default:
		return InputData{
			FieldData:   data,
			Type:        kind.InputType,
			Placeholder: optionalString(opts.Placeholder),
			HelpText:    help,
		}, nil
	}
}

// Render renders tag for key using the current state of cache.
func (t *Tags) Render(ctx context.Context, cache *field.Cache, tag, key string, opts TagOptions) (string, error) {
	path, err := t.TemplatePath(tag)
	if err != nil {
		return "", err
	}
	data, err := t.ViewData(ctx, cache, tag, key, opts)
	if err != nil {
		return "", err
	}
	out, err := t.renderer.RenderTemplate(path, data)
	if err != nil {
		return "", fmt.Errorf("render: %s tag for %q: %w", tag, key, err)
	}
	return out, nil
}

// Funcs returns one template function per registered tag, bound to ctx and
// cache. Input tags take (key, placeholder, helpText), file tags take (key,
// helpText, accept, multiple) and select tags take (key, options,
// placeholder, helpText); trailing arguments are optional. The output is
// HTML and must be marked safe by the template.
func (t *Tags) Funcs(ctx context.Context, cache *field.Cache) map[string]any {
	funcs := make(map[string]any)
	for _, name := range t.registry.List() {
		kind, err := t.registry.Get(name)
		if err != nil {
			continue
		}
		tag := kind.Name
		switch kind.Shape {
		case ShapeFile:
			funcs[tag] = func(key string, extras ...string) (string, error) {
				return t.Render(ctx, cache, tag, key, TagOptions{
					HelpText: arg(extras, 0),
					Accept:   splitList(arg(extras, 1)),
					Multiple: truthy(arg(extras, 2)),
				})
			}
		case ShapeSelect:
			funcs[tag] = func(key string, options any, extras ...string) (string, error) {
				return t.Render(ctx, cache, tag, key, TagOptions{
					Options:     OptionsFrom(options),
					Placeholder: arg(extras, 0),
					HelpText:    arg(extras, 1),
				})
			}
		default:
			funcs[tag] = func(key string, extras ...string) (string, error) {
				return t.Render(ctx, cache, tag, key, TagOptions{
					Placeholder: arg(extras, 0),
					HelpText:    arg(extras, 1),
				})
			}
		}
	}
	return funcs
}

// OptionsFrom accepts the shapes select options take once they pass through
// template data: []Option, OptionRepresentable slices, or maps with "id" and
// "value" entries.
func OptionsFrom(raw any) []Option {
	switch v := raw.(type) {
	case nil:
		return nil
	case []Option:
		return v
	case []OptionRepresentable:
		return MakeOptions(v)
	case []map[string]any:
		out := make([]Option, 0, len(v))
		for _, entry := range v {
			if option, ok := optionFromMap(entry); ok {
				out = append(out, option)
			}
		}
		return out
	case []any:
		out := make([]Option, 0, len(v))
		for _, entry := range v {
			switch item := entry.(type) {
			case Option:
				out = append(out, item)
			case OptionRepresentable:
				if option, ok := MakeOption(item); ok {
					out = append(out, option)
				}
			case map[string]any:
				if option, ok := optionFromMap(item); ok {
					out = append(out, option)
				}
			}
		}
		return out
	default:
		return nil
	}
}

func optionFromMap(entry map[string]any) (Option, bool) {
	id, _ := entry["id"].(string)
	value, _ := entry["value"].(string)
	if strings.TrimSpace(id) == "" {
		return Option{}, false
	}
	if strings.TrimSpace(value) == "" {
		value = id
	}
	return Option{ID: id, Value: value}, true
}

func arg(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "multiple":
		return true
	default:
		return false
	}
}
