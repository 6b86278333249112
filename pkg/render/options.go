package render

import (
	"github.com/microcosm-cc/bluemonday"
)

// TagOptions carry the per-call extras of a tag. Which ones are used depends
// on the tag's Shape.
type TagOptions struct {
	// Placeholder is shown by input and select tags.
	Placeholder string
	// HelpText may contain links and basic emphasis; everything else is
	// stripped before rendering.
	HelpText string
	// Accept lists the content types a file tag accepts.
	Accept []string
	// Multiple lets a file tag select several files.
	Multiple bool
	// Options are the entries of a select tag.
	Options []Option
}

// TagsOption configures Tags.
type TagsOption func(*Tags)

// WithTemplatePaths overrides where tags find their templates.
func WithTemplatePaths(paths TemplatePaths) TagsOption {
	return func(t *Tags) {
		t.paths = paths
	}
}

// WithRegistry replaces the built-in tag kinds.
func WithRegistry(registry *Registry) TagsOption {
	return func(t *Tags) {
		if registry != nil {
			t.registry = registry
		}
	}
}

// WithHelpTextPolicy replaces the help text sanitizer.
func WithHelpTextPolicy(policy *bluemonday.Policy) TagsOption {
	return func(t *Tags) {
		if policy != nil {
			t.policy = policy
		}
	}
}

// WithTranslator localizes labels, help text and errors.
func WithTranslator(translator Translator, onMissing MissingTranslationHandler) TagsOption {
	return func(t *Tags) {
		t.translator = translator
		t.onMissing = onMissing
	}
}
