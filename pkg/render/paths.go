package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeTemplatePrefix prefixes the theme template keys that override tag
// templates, e.g. "submissions.text".
const ThemeTemplatePrefix = "submissions."

// TemplatePaths maps tags to the templates they render. Empty entries fall
// back to the tag's registered template.
type TemplatePaths struct {
	Checkbox string
	Email    string
	File     string
	Hidden   string
	Password string
	Text     string
	Textarea string
	Select   string

	// Custom holds paths for tags registered beyond the built-in set.
	Custom map[string]string
}

// DefaultTemplatePaths returns "fields/<tag>-input" for every built-in tag.
func DefaultTemplatePaths() TemplatePaths {
	return TemplatePaths{
		Checkbox: defaultTemplatePath(TagCheckbox),
		Email:    defaultTemplatePath(TagEmail),
		File:     defaultTemplatePath(TagFile),
		Hidden:   defaultTemplatePath(TagHidden),
		Password: defaultTemplatePath(TagPassword),
		Text:     defaultTemplatePath(TagText),
		Textarea: defaultTemplatePath(TagTextarea),
		Select:   defaultTemplatePath(TagSelect),
	}
}

// Path returns the configured template for tag.
func (p TemplatePaths) Path(tag string) (string, bool) {
	var path string
	switch tag {
	case TagCheckbox:
		path = p.Checkbox
	case TagEmail:
		path = p.Email
	case TagFile:
		path = p.File
	case TagHidden:
		path = p.Hidden
	case TagPassword:
		path = p.Password
	case TagText:
		path = p.Text
	case TagTextarea:
		path = p.Textarea
	case TagSelect:
		path = p.Select
	default:
		path = p.Custom[tag]
	}
	path = strings.TrimSpace(path)
	return path, path != ""
}

// With returns a copy of p with tag rendered from path.
func (p TemplatePaths) With(tag, path string) TemplatePaths {
	path = strings.TrimSpace(path)
	switch tag {
	case TagCheckbox:
		p.Checkbox = path
	case TagEmail:
		p.Email = path
	case TagFile:
		p.File = path
	case TagHidden:
		p.Hidden = path
	case TagPassword:
		p.Password = path
	case TagText:
		p.Text = path
	case TagTextarea:
		p.Textarea = path
	case TagSelect:
		p.Select = path
	default:
		custom := make(map[string]string, len(p.Custom)+1)
		for key, value := range p.Custom {
			custom[key] = value
		}
		custom[tag] = path
		p.Custom = custom
	}
	return p
}

// WithTheme applies the template overrides of a go-theme selection. Manifest
// templates keyed "submissions.<tag>" replace the tag's path; the selected
// variant's templates win over the manifest's.
func (p TemplatePaths) WithTheme(selection *theme.Selection) TemplatePaths {
	if selection == nil || selection.Manifest == nil {
		return p
	}
	p = p.applyThemeTemplates(selection.Manifest.Templates)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		p = p.applyThemeTemplates(variant.Templates)
	}
	return p
}

func (p TemplatePaths) applyThemeTemplates(templates map[string]string) TemplatePaths {
	for key, path := range templates {
		tag, ok := strings.CutPrefix(key, ThemeTemplatePrefix)
		if !ok || tag == "" || strings.TrimSpace(path) == "" {
			continue
		}
		p = p.With(tag, path)
	}
	return p
}

// SelectTheme resolves name/variant through selector and applies the result.
func (p TemplatePaths) SelectTheme(selector theme.ThemeSelector, name, variant string) (TemplatePaths, error) {
	if selector == nil {
		return p, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return p, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	return p.WithTheme(selection), nil
}

// Themes selects from a fixed set of manifests keyed by name. It serves
// applications that ship their themes with the binary.
type Themes map[string]*theme.Manifest

var _ theme.ThemeSelector = Themes(nil)

// Select returns the manifest registered under name. An unknown variant
// selects the manifest alone.
func (t Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := t[name]
	if !ok || manifest == nil {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}
