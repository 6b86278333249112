package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// FieldData is the view data shared by every tag.
type FieldData struct {
	Key        string   `json:"key"`
	Value      *string  `json:"value,omitempty"`
	Label      *string  `json:"label,omitempty"`
	IsRequired bool     `json:"isRequired"`
	Errors     []string `json:"errors"`
	HasErrors  bool     `json:"hasErrors"`
}

// InputData is rendered by text-like inputs.
type InputData struct {
	FieldData
	Type        string  `json:"type"`
	Placeholder *string `json:"placeholder,omitempty"`
	HelpText    *string `json:"helpText,omitempty"`
}

// FileData is rendered by file inputs.
type FileData struct {
	FieldData
	HelpText *string `json:"helpText,omitempty"`
	Accept   *string `json:"accept,omitempty"`
	Multiple bool    `json:"multiple"`
}

// SelectData is rendered by select inputs.
type SelectData struct {
	FieldData
	Options     []Option `json:"options"`
	Placeholder *string  `json:"placeholder,omitempty"`
	HelpText    *string  `json:"helpText,omitempty"`
}

// Option is one entry of a select input.
type Option struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// OptionRepresentable is implemented by values that can be offered in a
// select input. An empty OptionID skips the value; an empty OptionValue
// falls back to the ID.
type OptionRepresentable interface {
	OptionID() string
	OptionValue() string
}

// MakeOption converts item into an Option.
func MakeOption(item OptionRepresentable) (Option, bool) {
	if item == nil {
		return Option{}, false
	}
	id := strings.TrimSpace(item.OptionID())
	if id == "" {
		return Option{}, false
	}
	value := item.OptionValue()
	if strings.TrimSpace(value) == "" {
		value = id
	}
	return Option{ID: id, Value: value}, true
}

// MakeOptions converts items, skipping those without an ID.
func MakeOptions[T OptionRepresentable](items []T) []Option {
	out := make([]Option, 0, len(items))
	for _, item := range items {
		if option, ok := MakeOption(item); ok {
			out = append(out, option)
		}
	}
	return out
}

// Data reads the state of key from cache, waiting for its errors to settle.
// Unknown keys yield data without value, label or errors.
func Data(ctx context.Context, cache *field.Cache, key string) (FieldData, error) {
	data := FieldData{Key: key, Errors: []string{}}
	if cache == nil {
		return data, nil
	}

	if f, ok := cache.Field(key); ok {
		data.Value = f.Value()
		if label := f.Label(); label != "" {
			data.Label = &label
		}
		data.IsRequired = f.IsRequired()
	}

	if pending, ok := cache.Errors(key); ok {
		errs, err := pending.Wait(ctx)
		if err != nil {
			return FieldData{}, fmt.Errorf("render: errors for %q: %w", key, err)
		}
		data.Errors = validation.Reasons(errs)
	}
	data.HasErrors = len(data.Errors) > 0
	return data, nil
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
