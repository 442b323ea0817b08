package widget

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in templates so callers can copy and override
// them. Overrides must keep the templates/field_list.tpl path.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
