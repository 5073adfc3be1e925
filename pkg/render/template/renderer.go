package template

import "io"

// TemplateRenderer renders a named template with a view context. Output is
// returned and, when writers are given, also copied to each one.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
}
