package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// Kind picks the terminal widget a field is asked with.
type Kind uint8

const (
	KindLine Kind = iota
	KindSecret
	KindText
	KindToggle
	KindChoice
)

// Question is one field put to the user, built from the field's render data.
// Answers come back in submitted form: "true" or "false" for toggles and the
// chosen option ID for choices.
type Question struct {
	Field   render.FieldData
	Kind    Kind
	Message string
	Default string
	Help    string
	Choices []render.Option
	// Check rejects an answer before the driver accepts it. nil accepts
	// everything.
	Check validation.Validator[string]
}

// PromptDriver abstracts the terminal so prompting can be tested without one.
type PromptDriver interface {
	Ask(ctx context.Context, q Question) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

func newSurveyDriver() PromptDriver {
	return &surveyDriver{out: os.Stdout}
}

func (d *surveyDriver) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch q.Kind {
	case KindToggle:
		var yes bool
		prompt := &survey.Confirm{Message: q.Message, Help: q.Help, Default: q.Default == "true"}
		if err := survey.AskOne(prompt, &yes); err != nil {
			return "", translateSurveyErr(err)
		}
		return strconv.FormatBool(yes), nil
	case KindChoice:
		prompt := &survey.Select{Message: q.Message, Help: q.Help, Options: choiceLabels(q.Choices)}
		for i, choice := range q.Choices {
			if choice.ID == q.Default {
				prompt.Default = prompt.Options[i]
				break
			}
		}
		var idx int
		if err := survey.AskOne(prompt, &idx); err != nil {
			return "", translateSurveyErr(err)
		}
		if idx < 0 || idx >= len(q.Choices) {
			return "", fmt.Errorf("tui: selection %d out of range", idx)
		}
		return q.Choices[idx].ID, nil
	}

	var prompt survey.Prompt
	switch q.Kind {
	case KindSecret:
		prompt = &survey.Password{Message: q.Message, Help: q.Help}
	case KindText:
		prompt = &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}
	default:
		prompt = &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}
	}
	var out string
	if err := survey.AskOne(prompt, &out, checkOpts(q.Check)...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func choiceLabels(choices []render.Option) []string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		if choice.Value == "" {
			labels = append(labels, choice.ID)
			continue
		}
		labels = append(labels, choice.Value)
	}
	return labels
}

func checkOpts(check validation.Validator[string]) []survey.AskOpt {
	if check == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithValidator(func(ans interface{}) error {
		text, _ := ans.(string)
		return check(text)
	})}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
