package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/submission"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// Renderer implements render.Renderer for terminal sessions: every tag of a
// form becomes a prompt, prefilled from the field cache, with the cached
// errors printed before the prompt.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	rules             map[string][]validation.Validator[string]
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		maxAttempts:  3,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts every field of form once and serializes the answers.
func (r *Renderer) Render(ctx context.Context, form render.Form, cache *field.Cache) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	state := NewState(nil)
	if err := r.prompt(ctx, form.Fields, cache, state); err != nil {
		return nil, err
	}
	return r.serialize(state)
}

// SubmitFunc validates the collected values, recording field state in cache.
// A *submission.ValidationError sends the failing fields back to the user;
// any other error ends the session.
type SubmitFunc func(ctx context.Context, values map[string]string, cache *field.Cache) error

// Run prompts form, submits the answers and re-prompts the fields that fail
// validation until submit succeeds or the attempts run out.
func (r *Renderer) Run(ctx context.Context, form render.Form, submit SubmitFunc) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if submit == nil {
		return nil, errors.New("tui: submit func is required")
	}

	state := NewState(nil)
	cache := field.NewCache()
	fields := form.Fields

	for attempt := 1; ; attempt++ {
		if err := r.prompt(ctx, fields, cache, state); err != nil {
			return nil, err
		}

		cache = field.NewCache()
		err := submit(ctx, state.Values(), cache)
		if err == nil {
			return r.serialize(state)
		}

		var invalid *submission.ValidationError
		if !errors.As(err, &invalid) || attempt >= r.maxAttempts {
			return nil, err
		}
		fields = failing(form.Fields, invalid)
		if len(fields) == 0 {
			return nil, err
		}
		if err := r.info(ctx, r.theme.InfoPrefix, fmt.Sprintf("%d field(s) need attention", len(fields))); err != nil {
			return nil, err
		}
	}
}

func failing(fields []render.FormField, invalid *submission.ValidationError) []render.FormField {
	out := make([]render.FormField, 0, len(invalid.Errors))
	for _, ff := range fields {
		if _, ok := invalid.Errors[ff.Key]; ok {
			out = append(out, ff)
		}
	}
	return out
}

func (r *Renderer) prompt(ctx context.Context, fields []render.FormField, cache *field.Cache, state *State) error {
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}
	for _, ff := range fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := render.Data(ctx, cache, ff.Key)
		if err != nil {
			return err
		}
		if err := r.promptField(ctx, ff, data, state); err != nil {
			return fmt.Errorf("tui: prompt %q: %w", ff.Key, err)
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, ff render.FormField, data render.FieldData, state *State) error {
	current, ok := state.Get(ff.Key)
	if !ok && data.Value != nil {
		current = *data.Value
	}

	if ff.Tag == render.TagHidden {
		if current != "" {
			state.Set(ff.Key, current)
		}
		return nil
	}

	for _, reason := range data.Errors {
		if err := r.info(ctx, r.theme.ErrorPrefix, fmt.Sprintf("%s %s", displayLabel(data), reason)); err != nil {
			return err
		}
	}

	q, err := r.question(ff, data, current)
	if err != nil {
		return err
	}
	answer, err := r.driver.Ask(ctx, q)
	if err != nil {
		return err
	}
	switch q.Kind {
	case KindChoice:
		if !hasChoice(q.Choices, answer) {
			return fmt.Errorf("tui: %q is not an option", answer)
		}
	case KindLine:
		answer = strings.TrimSpace(answer)
	}
	state.Set(ff.Key, answer)
	return nil
}

func (r *Renderer) info(ctx context.Context, prefix, msg string) error {
	return r.driver.Info(ctx, prefix+msg)
}

func (r *Renderer) serialize(state *State) ([]byte, error) {
	values, err := state.Nested()
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(data render.FieldData) string {
	if data.Label != nil && *data.Label != "" {
		return *data.Label
	}
	return data.Key
}

func displayHelp(opts render.TagOptions) string {
	if help := render.SanitizeHelpText(opts.HelpText); help != "" {
		return help
	}
	return opts.Placeholder
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
