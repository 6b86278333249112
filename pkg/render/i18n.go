package render

import (
	"context"
	"errors"
	"strings"
)

// Translator resolves localized strings. Labels are looked up as
// "fields.<key>.label", help text as "fields.<key>.help" and error reasons as
// "errors.<reason>".
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the string used when a key has no
// translation. fallback is the untranslated text.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

func missingTranslationDefault(_, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

type localeKey struct{}

// WithLocale stores the locale used to translate tags rendered with ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, strings.TrimSpace(locale))
}

// LocaleFrom returns the locale stored by WithLocale.
func LocaleFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

// localize translates the label, help text and errors of data in place.
// Nothing changes without a translator.
func (t *Tags) localize(ctx context.Context, data *FieldData, helpText **string) {
	if t.translator == nil {
		return
	}
	locale := LocaleFrom(ctx)

	if data.Label != nil {
		label := translate(locale, "fields."+data.Key+".label", *data.Label, t.translator, t.onMissing)
		data.Label = &label
	}
	if helpText != nil && *helpText != nil {
		help := translate(locale, "fields."+data.Key+".help", **helpText, t.translator, t.onMissing)
		*helpText = &help
	}
	for i, reason := range data.Errors {
		data.Errors[i] = translate(locale, "errors."+reason, reason, t.translator, t.onMissing)
	}
}
