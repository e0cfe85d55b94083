package api

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"dashboard/internal/engine"
	"dashboard/internal/models"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer implements echo.Renderer over the embedded templates.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type dashboardPage struct {
	Title    string
	Menu     []models.MenuItem
	Columns  [2][]models.Panel
	Segments []models.Segment
	Bounds   models.Bounds
}

func (h *Handler) GetDashboard(c echo.Context) error {
	st := h.store.Load()
	page := dashboardPage{
		Title:    "Dashboard",
		Menu:     st.Menu,
		Segments: models.AllSegments,
		Bounds:   engine.TableBounds(st.Customers),
	}
	for _, p := range st.Panels {
		col := p.Column - 1
		if col < 0 || col > 1 {
			col = 0
		}
		page.Columns[col] = append(page.Columns[col], p)
	}
	return c.Render(http.StatusOK, "dashboard.html", page)
}
