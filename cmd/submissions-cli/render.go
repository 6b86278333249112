package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-submissions/internal/demo"
	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/submission"
	"github.com/goliatone/go-submissions/pkg/validation"
)

func newRenderCmd(_ *dependencies) *cobra.Command {
	var (
		formName    string
		contextName string
		file        string
		action      string
		method      string
		output      string
		errorsFile  string
		taken       []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a demo form as HTML",
		Long: `Render prints the HTML of a demo form.

Without --file the blank form is rendered. With --file the payload values
are filled in, and with --context they are also validated so the errors
show next to each field. --errors folds in the error body of an upstream
API, either a 422 response or a plain map of paths to messages.

Examples:
  submissions-cli render --form user
  submissions-cli render --form todo --file todo.json --context create
  submissions-cli render --form user --file user.json --errors upstream.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := lookupSpec(formName)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			engine, err := demo.ProvideEngine(cfg)
			if err != nil {
				return err
			}
			tags, err := demo.ProvideTags(cfg, engine)
			if err != nil {
				return err
			}

			data, err := readPayload(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			fields, err := spec.build(data, takenChecker(taken))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cache := field.NewCache()
			var formErrors []string
			if contextName == "" {
				cache.Populate(fields...)
			} else {
				vctx, err := validation.ParseContext(contextName)
				if err != nil {
					return err
				}
				v := submission.New(submission.WithLogger(cliLogger(cmd)))
				err = v.ValidateFields(ctx, cache, vctx, fields...)
				if _, ok := submission.AsValidationError(err); ok {
					formErrors = append(formErrors, submission.ValidationReason)
				} else if err != nil {
					return err
				}
			}

			if errorsFile != "" {
				payload, reasons, err := readErrorPayload(errorsFile)
				if err != nil {
					return err
				}
				mapping := render.MapErrorPayload(cache, payload)
				mapping.Apply(cache)
				formErrors = render.MergeFormErrors(formErrors, append(reasons, mapping.Form...)...)
			}

			html, err := render.NewHTMLRenderer(tags, "").Render(ctx, render.Form{
				Action: action,
				Method: method,
				Fields: spec.layout,
				Errors: formErrors,
			}, cache)
			if err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, html, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(html)
			return err
		},
	}

	cmd.Flags().StringVarP(&formName, "form", "f", "todo", "form to render (todo, user)")
	cmd.Flags().StringVarP(&contextName, "context", "c", "", "validate the payload in this context before rendering")
	cmd.Flags().StringVar(&file, "file", "", "JSON payload path, - for stdin")
	cmd.Flags().StringVar(&action, "action", "", "form action URL")
	cmd.Flags().StringVar(&method, "method", http.MethodPost, "form method")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&errorsFile, "errors", "", "upstream error body (JSON) to show on the form")
	cmd.Flags().StringSliceVar(&taken, "taken", nil, "usernames that are already taken")
	return cmd
}

// readErrorPayload decodes a 422 body in this library's shape, or a bare map
// of field paths to messages. The reason of a 422 body is returned as a
// form-level message.
func readErrorPayload(path string) (map[string][]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var body submission.Response
	if err := json.Unmarshal(data, &body); err == nil && (body.Error || len(body.ValidationErrors) > 0) {
		var reasons []string
		if body.Reason != "" {
			reasons = append(reasons, body.Reason)
		}
		return body.ValidationErrors, reasons, nil
	}

	var bare map[string][]string
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, nil, fmt.Errorf("decode error payload %s: %w", path, err)
	}
	return bare, nil, nil
}
