package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/taskboard/internal/view"
)

// HandleHome renders the landing page that documents the API.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.HomePage(view.Endpoints).Render(r.Context(), w); err != nil {
		slog.Error("render home page", "error", err)
	}
}
