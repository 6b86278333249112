package submissions

import (
	"io/fs"

	"github.com/goliatone/go-submissions/pkg/render"
)

// EmbeddedTemplates exposes the built-in tag and form templates so callers
// can reuse or extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
