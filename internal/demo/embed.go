package demo

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/todos/*.tmpl
var templateFiles embed.FS

// TemplatesFS returns the page templates, rooted so that paths read
// "todos/index.tmpl".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return templateFiles
	}
	return sub
}
