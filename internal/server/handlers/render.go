package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded HTML pages
type Renderer struct {
	logger    *slog.Logger
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		logger:    logger,
		templates: tmpl,
	}, nil
}

// Render writes an HTML page with the given status code
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("failed to render template", slog.String("template", name), slog.Any("error", err))
	}
}
