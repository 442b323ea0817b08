package template

import (
	"io"
)

// TemplateRenderer is the seam markup renderers depend on. Implementations
// return the rendered string and also copy it to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
