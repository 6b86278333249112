package render_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/render/template/gotemplate"
	"github.com/goliatone/go-submissions/pkg/testsupport"
	"github.com/goliatone/go-submissions/pkg/validation"
)

func newCache(t *testing.T) *field.Cache {
	t.Helper()

	cache := field.NewCache()
	cache.Populate(
		field.New(field.Config[string]{Key: "name", Label: "Name", Value: ptr("Ada"), Required: true}),
		field.New(field.Config[string]{Key: "email", Label: "Email"}),
		field.New(field.Config[string]{Key: "planet", Label: "Planet", Value: ptr("mars")}),
		field.New(field.Config[validation.File]{Key: "avatar", Label: "Avatar"}),
	)
	cache.SetErrors("email", field.Resolved(validation.ErrAbsent))
	return cache
}

func TestTags_ViewDataByShape(t *testing.T) {
	tags, err := render.NewTags(&testsupport.RecordingRenderer{})
	if err != nil {
		t.Fatalf("new tags: %v", err)
	}
	ctx := context.Background()
	cache := newCache(t)

	input, err := tags.ViewData(ctx, cache, render.TagEmail, "email", render.TagOptions{Placeholder: "you@example.com"})
	if err != nil {
		t.Fatalf("input view data: %v", err)
	}
	wantInput := render.InputData{
		FieldData: render.FieldData{
			Key:       "email",
			Label:     ptr("Email"),
			Errors:    []string{"is absent"},
			HasErrors: true,
		},
		Type:        "email",
		Placeholder: ptr("you@example.com"),
	}
	if diff := cmp.Diff(wantInput, input); diff != "" {
		t.Fatalf("input mismatch (-want +got):\n%s", diff)
	}

	file, err := tags.ViewData(ctx, cache, render.TagFile, "avatar", render.TagOptions{
		Accept:   []string{"image/png", "image/jpeg"},
		Multiple: true,
	})
	if err != nil {
		t.Fatalf("file view data: %v", err)
	}
	wantFile := render.FileData{
		FieldData: render.FieldData{Key: "avatar", Label: ptr("Avatar"), Errors: []string{}},
		Accept:    ptr("image/png,image/jpeg"),
		Multiple:  true,
	}
	if diff := cmp.Diff(wantFile, file); diff != "" {
		t.Fatalf("file mismatch (-want +got):\n%s", diff)
	}

	sel, err := tags.ViewData(ctx, cache, render.TagSelect, "planet", render.TagOptions{})
	if err != nil {
		t.Fatalf("select view data: %v", err)
	}
	wantSelect := render.SelectData{
		FieldData: render.FieldData{Key: "planet", Label: ptr("Planet"), Value: ptr("mars"), Errors: []string{}},
		Options:   []render.Option{},
	}
	if diff := cmp.Diff(wantSelect, sel); diff != "" {
		t.Fatalf("select mismatch (-want +got):\n%s", diff)
	}
}

func TestTags_RenderUsesTemplatePaths(t *testing.T) {
	recorder := &testsupport.RecordingRenderer{}
	tags, err := render.NewTags(recorder, render.WithTemplatePaths(
		render.DefaultTemplatePaths().With(render.TagText, "custom/text"),
	))
	if err != nil {
		t.Fatalf("new tags: %v", err)
	}

	out, err := tags.Render(context.Background(), newCache(t), render.TagText, "name", render.TagOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<custom/text>" {
		t.Fatalf("unexpected output %q", out)
	}
	if name := recorder.Last(t).Name; name != "custom/text" {
		t.Fatalf("unexpected template %q", name)
	}

	if _, err := tags.Render(context.Background(), newCache(t), "date", "name", render.TagOptions{}); err == nil {
		t.Fatalf("expected unknown tag error")
	}
}

func TestTags_RenderWrapsTemplateErrors(t *testing.T) {
	boom := errors.New("template exploded")
	tags, err := render.NewTags(&testsupport.RecordingRenderer{
		Output: func(string, any) (string, error) { return "", boom },
	})
	if err != nil {
		t.Fatalf("new tags: %v", err)
	}

	_, err = tags.Render(context.Background(), newCache(t), render.TagText, "name", render.TagOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped template error, got %v", err)
	}
}

func TestTags_SanitizesHelpText(t *testing.T) {
	tags, err := render.NewTags(&testsupport.RecordingRenderer{})
	if err != nil {
		t.Fatalf("new tags: %v", err)
	}

	data, err := tags.ViewData(context.Background(), newCache(t), render.TagText, "name", render.TagOptions{
		HelpText: `Shown on your <b>profile</b><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("view data: %v", err)
	}
	help := data.(render.InputData).HelpText
	if help == nil || *help != "Shown on your <b>profile</b>" {
		t.Fatalf("unexpected help text %v", help)
	}
}

func TestTags_Localizes(t *testing.T) {
	translations := map[string]string{
		"fields.email.label": "Correo",
		"errors.is absent":   "es obligatorio",
	}
	var missing []string
	tags, err := render.NewTags(&testsupport.RecordingRenderer{}, render.WithTranslator(
		render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
			if locale != "es" {
				return "", fmt.Errorf("unsupported locale %q", locale)
			}
			return translations[key], nil
		}),
		func(locale, key, fallback string, _ error) string {
			missing = append(missing, key)
			return fallback
		},
	))
	if err != nil {
		t.Fatalf("new tags: %v", err)
	}

	ctx := render.WithLocale(context.Background(), "es")
	data, err := tags.ViewData(ctx, newCache(t), render.TagEmail, "email", render.TagOptions{HelpText: "Used for login"})
	if err != nil {
		t.Fatalf("view data: %v", err)
	}
	input := data.(render.InputData)
	if *input.Label != "Correo" {
		t.Fatalf("label not translated: %q", *input.Label)
	}
	if diff := cmp.Diff([]string{"es obligatorio"}, input.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if *input.HelpText != "Used for login" {
		t.Fatalf("expected fallback help text, got %q", *input.HelpText)
	}
	if diff := cmp.Diff([]string{"fields.email.help"}, missing); diff != "" {
		t.Fatalf("missing keys mismatch (-want +got):\n%s", diff)
	}
}

func TestTags_FuncsMatchRegistry(t *testing.T) {
	tags, err := render.NewTags(&testsupport.RecordingRenderer{})
	if err != nil {
		t.Fatalf("new tags: %v", err)
	}

	funcs := tags.Funcs(context.Background(), newCache(t))
	if len(funcs) != len(tags.Registry().List()) {
		t.Fatalf("expected one func per tag, got %d", len(funcs))
	}

	text, ok := funcs[render.TagText].(func(string, ...string) (string, error))
	if !ok {
		t.Fatalf("unexpected text func type %T", funcs[render.TagText])
	}
	if out, err := text("name"); err != nil || out != "<fields/text-input>" {
		t.Fatalf("unexpected text output %q, %v", out, err)
	}
	if _, ok := funcs[render.TagSelect].(func(string, any, ...string) (string, error)); !ok {
		t.Fatalf("unexpected select func type %T", funcs[render.TagSelect])
	}
}

func TestTags_EmbeddedTemplates(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(render.TemplatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	tags, err := render.NewTags(engine)
	if err != nil {
		t.Fatalf("new tags: %v", err)
	}
	ctx := context.Background()
	cache := newCache(t)

	tests := []struct {
		name     string
		tag      string
		key      string
		opts     render.TagOptions
		contains []string
		excludes []string
	}{
		{
			name:     "text with value",
			tag:      render.TagText,
			key:      "name",
			contains: []string{`type="text"`, `name="name"`, `value="Ada"`, "required", `<label for="name">Name`},
			excludes: []string{"submissions-errors"},
		},
		{
			name:     "email with errors",
			tag:      render.TagEmail,
			key:      "email",
			opts:     render.TagOptions{Placeholder: "you@example.com", HelpText: "<i>never</i> shared"},
			contains: []string{`type="email"`, `placeholder="you@example.com"`, "<li>is absent</li>", `aria-invalid="true"`, "<i>never</i> shared"},
		},
		{
			name:     "password hides value",
			tag:      render.TagPassword,
			key:      "name",
			contains: []string{`type="password"`},
			excludes: []string{`value="Ada"`},
		},
		{
			name:     "select marks current option",
			tag:      render.TagSelect,
			key:      "planet",
			opts:     render.TagOptions{Placeholder: "Pick one", Options: []render.Option{{ID: "earth", Value: "Earth"}, {ID: "mars", Value: "Mars"}}},
			contains: []string{`<option value="">Pick one</option>`, `<option value="earth">Earth</option>`, `<option value="mars" selected>Mars</option>`},
		},
		{
			name:     "file",
			tag:      render.TagFile,
			key:      "avatar",
			opts:     render.TagOptions{Accept: []string{"image/png"}, Multiple: true},
			contains: []string{`type="file"`, `accept="image/png"`, "multiple"},
		},
		{
			name:     "textarea escapes value",
			tag:      render.TagTextarea,
			key:      "name",
			contains: []string{"<textarea", ">Ada</textarea>"},
		},
		{
			name:     "hidden",
			tag:      render.TagHidden,
			key:      "planet",
			contains: []string{`<input type="hidden" id="planet" name="planet" value="mars">`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tags.Render(ctx, cache, tt.tag, tt.key, tt.opts)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Fatalf("expected %q in output:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Fatalf("did not expect %q in output:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestTags_EmbeddedTemplatesEscapeValues(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(render.TemplatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	tags, err := render.NewTags(engine)
	if err != nil {
		t.Fatalf("new tags: %v", err)
	}
	cache := field.NewCache()
	cache.SetField(field.New(field.Config[string]{Key: "bio", Value: ptr(`"><script>x</script>`)}))

	out, err := tags.Render(context.Background(), cache, render.TagText, "bio", render.TagOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("value was not escaped:\n%s", out)
	}
}
