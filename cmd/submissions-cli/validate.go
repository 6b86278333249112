package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/submission"
	"github.com/goliatone/go-submissions/pkg/validation"
)

type validResult struct {
	Error bool `json:"error"`
	Valid bool `json:"valid"`
}

func newValidateCmd(_ *dependencies) *cobra.Command {
	var (
		formName    string
		contextName string
		file        string
		taken       []string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON payload against a demo form",
		Long: `Validate reads a JSON payload and prints the validation result.

Failures are printed as the 422 response body and exit with status 2.

Examples:
  submissions-cli validate --form todo --file todo.json
  echo '{"title":"abc"}' | submissions-cli validate --form todo --file -
  submissions-cli validate --form user --context update --taken ada --file user.json`,
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
			data, err := readPayload(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if data == nil {
				data = []byte("{}")
			}
			fields, err := spec.build(data, takenChecker(taken))
			if err != nil {
				return err
			}

			v := submission.New(submission.WithLogger(cliLogger(cmd)))
			err = v.ValidateFields(cmd.Context(), field.NewCache(), vctx, fields...)
			if invalid, ok := submission.AsValidationError(err); ok {
				if err := writeJSON(cmd.OutOrStdout(), invalid.Response()); err != nil {
					return err
				}
				return errInvalid
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), validResult{Valid: true})
		},
	}

	cmd.Flags().StringVarP(&formName, "form", "f", "todo", "form to validate (todo, user)")
	cmd.Flags().StringVarP(&contextName, "context", "c", "create", "validation context (new, create, update, custom:<name>)")
	cmd.Flags().StringVar(&file, "file", "-", "JSON payload path, - for stdin")
	cmd.Flags().StringSliceVar(&taken, "taken", nil, "usernames that are already taken")
	return cmd
}
