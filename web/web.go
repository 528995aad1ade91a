package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templates embed.FS

// MustTemplates parses the embedded page templates for gin's HTML renderer.
func MustTemplates() *template.Template {
	return template.Must(template.ParseFS(templates, "templates/*.html"))
}
