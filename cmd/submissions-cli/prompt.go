package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/renderers/tui"
	"github.com/goliatone/go-submissions/pkg/submission"
	"github.com/goliatone/go-submissions/pkg/validation"
)

func newPromptCmd(deps *dependencies) *cobra.Command {
	var (
		formName    string
		contextName string
		format      string
		attempts    int
		taken       []string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in a demo form interactively",
		Long: `Prompt asks for every field of a demo form, validates the answers and
asks again for the fields that fail. The accepted answers are printed as
json, form or pretty text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := lookupSpec(formName)
			if err != nil {
				return err
			}
			vctx, err := validation.ParseContext(contextName)
			if err != nil {
				return err
			}

			opts := []tui.Option{
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithMaxAttempts(attempts),
			}
			if deps.driver != nil {
				opts = append(opts, tui.WithPromptDriver(deps.driver))
			}
			renderer, err := tui.New(opts...)
			if err != nil {
				return err
			}

			v := submission.New(submission.WithLogger(cliLogger(cmd)))
			checker := takenChecker(taken)
			out, err := renderer.Run(cmd.Context(), render.Form{Fields: spec.layout}, func(ctx context.Context, values map[string]string, cache *field.Cache) error {
				data, err := valuesJSON(spec.layout, values)
				if err != nil {
					return err
				}
				fields, err := spec.build(data, checker)
				if err != nil {
					return err
				}
				return v.ValidateFields(ctx, cache, vctx, fields...)
			})
			if _, ok := submission.AsValidationError(err); ok {
				return errInvalid
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&formName, "form", "f", "todo", "form to fill in (todo, user)")
	cmd.Flags().StringVarP(&contextName, "context", "c", "create", "validation context")
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format (json, form, pretty)")
	cmd.Flags().IntVar(&attempts, "attempts", 3, "how many times failing fields are asked again")
	cmd.Flags().StringSliceVar(&taken, "taken", nil, "usernames that are already taken")
	return cmd
}
