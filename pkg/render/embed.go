package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/fields/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in tag and form templates, rooted so that
// paths match DefaultTemplatePaths and FormTemplate.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
