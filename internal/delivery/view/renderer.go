package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TemplateDashboard is the name echo handlers pass to c.Render.
const TemplateDashboard = "dashboard.html"

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders dashboards as HTML. It implements echo.Renderer.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse dashboard templates")
	}

	return &Renderer{templates: tmpl}, nil
}

// RenderHTML writes the dashboard page.
func (r *Renderer) RenderHTML(w io.Writer, d Dashboard) error {
	return errors.WithStack(r.templates.ExecuteTemplate(w, TemplateDashboard, d))
}

// Render satisfies echo.Renderer. Dashboards go through RenderHTML.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	if d, ok := data.(Dashboard); ok && name == TemplateDashboard {
		return r.RenderHTML(w, d)
	}

	return errors.WithStack(r.templates.ExecuteTemplate(w, name, data))
}
