package tui

import "github.com/goliatone/go-submissions/pkg/validation"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme decorates what the renderer prints around fields.
type Theme struct {
	// PromptPrefix leads every field label.
	PromptPrefix string
	// RequiredMark follows the label of a required field, e.g. " *".
	RequiredMark string
	// InfoPrefix leads the retry notice of Run.
	InfoPrefix string
	// ErrorPrefix leads each cached reason printed before a field.
	ErrorPrefix string
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithRules checks the answers for key with the field's own sync rules, so
// the prompt rejects them before the form is submitted. Rules only see
// non-blank answers.
func WithRules(key string, rules ...validation.Validator[string]) Option {
	return func(r *Renderer) {
		if r.rules == nil {
			r.rules = make(map[string][]validation.Validator[string])
		}
		r.rules[key] = append(r.rules[key], rules...)
	}
}

// WithMaxAttempts bounds how many times Run prompts for failing fields.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}
