package server

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"MeloFM/logger"
)

// Renderer renders the small set of form-based HTML pages. Everything
// data-shaped goes through JSON instead; these pages only exist for the
// login/register/settings/contact flows.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all templates under dir.
func NewRenderer(dir string) (*Renderer, error) {
	templates, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates in %s: %w", dir, err)
	}
	return &Renderer{templates: templates}, nil
}

// pageData is what every template receives.
type pageData struct {
	Flash    string
	Username string
}

// RenderPage renders the named template, consuming any pending flash message.
func (rd *Renderer) RenderPage(w http.ResponseWriter, r *http.Request, name string) {
	data := pageData{Flash: popFlash(w, r)}
	if username, err := GetUsernameFromContext(r.Context()); err == nil {
		data.Username = username
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("Failed to render template",
			logger.String("template", name),
			logger.ErrorField(err),
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
