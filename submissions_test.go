package submissions

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/validation"
)

func TestEmbeddedTemplatesContainDefaults(t *testing.T) {
	fsys := EmbeddedTemplates()
	for _, tag := range render.DefaultRegistry().List() {
		path, _ := render.DefaultTemplatePaths().Path(tag)
		if _, err := fs.ReadFile(fsys, path+".tmpl"); err != nil {
			t.Fatalf("expected template for %s tag: %v", tag, err)
		}
	}
	if _, err := fs.ReadFile(fsys, render.FormTemplate+".tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}

type note struct{ Body string }

type noteForm struct{ Body *string }

func (f *noteForm) Fields(*note) []field.Field {
	var body *string
	if f != nil {
		body = f.Body
	}
	return []field.Field{field.New(field.Config[string]{
		Key:        "body",
		Label:      "Body",
		Value:      body,
		Required:   true,
		Validators: []validation.Validator[string]{validation.MinLength(3)},
	})}
}

func (f *noteForm) Create() (note, error) { return note{Body: *f.Body}, nil }

func TestCreateValidThenRender(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()
	body := "hi"

	_, err := CreateValid[note](ctx, cache, &noteForm{Body: &body})
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	tags, err := NewTags()
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	out, err := tags.Render(ctx, cache, render.TagTextarea, "body", render.TagOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{">hi</textarea>", "is less than required minimum of 3 characters"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWithThemeSelector(t *testing.T) {
	themes := render.Themes{"plain": &theme.Manifest{
		Name:      "plain",
		Templates: map[string]string{"submissions.text": "fields/textarea-input"},
	}}
	opt, err := WithThemeSelector(themes, "plain", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	tags, err := NewTags(opt)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	path, err := tags.TemplatePath(render.TagText)
	if err != nil {
		t.Fatalf("template path: %v", err)
	}
	if path != "fields/textarea-input" {
		t.Fatalf("template path = %q, want themed path", path)
	}

	if _, err := WithThemeSelector(themes, "missing", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}
