// Package submissions validates form submissions field by field and renders
// the fields back with their values and errors. The sub-packages hold the
// pieces; this package re-exports the common entry points.
package submissions

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/render/template/gotemplate"
	"github.com/goliatone/go-submissions/pkg/submission"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// Field aliases field.Field.
type Field = field.Field

// Cache aliases field.Cache, the per-request store of fields and errors.
type Cache = field.Cache

// Validator aliases submission.Validator.
type Validator = submission.Validator

// ValidationError aliases submission.ValidationError.
type ValidationError = submission.ValidationError

// Context aliases validation.Context.
type Context = validation.Context

// Validation contexts.
var (
	New    = validation.New
	Create = validation.Create
	Update = validation.Update
)

// NewCache returns an empty field cache.
func NewCache() *Cache {
	return field.NewCache()
}

// NewValidator returns a validator configured by opts.
func NewValidator(opts ...submission.Option) *Validator {
	return submission.New(opts...)
}

// CreateValid validates payload in the Create context with a default
// validator and builds the entity.
func CreateValid[E any](ctx context.Context, cache *Cache, payload submission.Creator[E]) (E, error) {
	return submission.CreateValid[E](ctx, nil, cache, payload)
}

// UpdateValid validates payload in the Update context with a default
// validator and applies it to a copy of existing.
func UpdateValid[E any](ctx context.Context, cache *Cache, payload submission.Updater[E], existing *E) (E, error) {
	return submission.UpdateValid[E](ctx, nil, cache, payload, existing)
}

// NewTags returns tags rendering the embedded templates with the pongo2
// engine.
func NewTags(opts ...render.TagsOption) (*render.Tags, error) {
	engine, err := gotemplate.New(gotemplate.WithFS(EmbeddedTemplates()))
	if err != nil {
		return nil, err
	}
	return render.NewTags(engine, opts...)
}

// WithThemeSelector resolves name and variant through selector and returns
// the matching template paths option for NewTags.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) (render.TagsOption, error) {
	paths, err := render.DefaultTemplatePaths().SelectTheme(selector, name, variant)
	if err != nil {
		return nil, err
	}
	return render.WithTemplatePaths(paths), nil
}
