package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

// PageHandler serves the single app page.
// It holds parsed templates so we don't re-parse them on every request.
type PageHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewPageHandler creates a PageHandler and parses the HTML templates.
// base.html defines the page shell with a {{template "content" .}} slot;
// index.html fills it via {{define "content"}}.
func NewPageHandler(templateDir string, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, "index.html"),
	)
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// HandleIndex serves the app page.
//
// HTTP: GET /
//
// The page itself is static — login state, the repo list, and the generated
// README all arrive client-side through the JSON API.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "README Studio — AI README generator",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
