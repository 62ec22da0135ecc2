// Package render provides the template-rendering service used by the
// compiler. Compilation builds binding contexts and hands them to a
// Renderer by template ID; the rendering engine itself stays behind this
// boundary.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders a named template with the given bindings.
type Renderer interface {
	Render(templateID string, data any) (string, error)
}

// TemplateRenderer is the default Renderer over the embedded template set.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl := template.New("bizspec").Funcs(template.FuncMap{
		"json": func(v any) (string, error) {
			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		"join": strings.Join,
	})

	tmpl, err := tmpl.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// Render executes the template identified by templateID with the given
// bindings. Unknown template IDs are errors.
func (r *TemplateRenderer) Render(templateID string, data any) (string, error) {
	t := r.templates.Lookup(templateID + ".tmpl")
	if t == nil {
		return "", fmt.Errorf("unknown template: %s", templateID)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", templateID, err)
	}
	return sb.String(), nil
}
