package tui

import (
	"strings"

	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/validation"
)

func (r *Renderer) question(ff render.FormField, data render.FieldData, current string) (Question, error) {
	q := Question{
		Field:   data,
		Message: r.theme.PromptPrefix + displayLabel(data),
		Default: current,
		Help:    displayHelp(ff.Options),
	}
	if data.IsRequired {
		q.Message += r.theme.RequiredMark
	}

	switch ff.Tag {
	case render.TagCheckbox:
		q.Kind = KindToggle
		return q, nil
	case render.TagSelect:
		if len(ff.Options.Options) == 0 {
			return Question{}, ErrNoOptions
		}
		q.Kind = KindChoice
		q.Choices = ff.Options.Options
		return q, nil
	case render.TagTextarea:
		q.Kind = KindText
	case render.TagPassword:
		q.Kind = KindSecret
		q.Default = ""
	default:
		q.Kind = KindLine
	}
	q.Check = answerCheck(data.IsRequired, r.rulesFor(ff)...)
	return q, nil
}

func (r *Renderer) rulesFor(ff render.FormField) []validation.Validator[string] {
	rules := append([]validation.Validator[string](nil), r.rules[ff.Key]...)
	if ff.Tag == render.TagEmail {
		rules = append(rules, validation.Email())
	}
	return rules
}

// answerCheck rejects a blank answer to a required field and runs rules on
// any non-blank answer.
func answerCheck(required bool, rules ...validation.Validator[string]) validation.Validator[string] {
	if !required && len(rules) == 0 {
		return nil
	}
	return func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if required {
				return validation.ErrAbsent
			}
			return nil
		}
		for _, rule := range rules {
			if err := rule(answer); err != nil {
				return err
			}
		}
		return nil
	}
}

func hasChoice(choices []render.Option, id string) bool {
	for _, choice := range choices {
		if choice.ID == id {
			return true
		}
	}
	return false
}
