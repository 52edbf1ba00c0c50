package interfaces

import (
	"io"
)

// TemplateRenderer renders named layout templates with the supplied data.
// Implementations typically wrap html/template or a theme engine; the
// optional writer avoids buffering when streaming straight to storage.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
