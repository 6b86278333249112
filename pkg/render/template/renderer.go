package template

// TemplateRenderer is the seam between tags and a template engine. Tags,
// HTMLRenderer and the demo pages render a template path with view data and
// nothing else.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
}
