package handlers

import (
	"net/http"

	"github.com/flosch/pongo2/v6"

	"github.com/soft-network/deskpro/internal/view"
)

// Home renders the marketing landing page.
func Home(v *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v.HTML(w, http.StatusOK, "home.html", pongo2.Context{})
	}
}

// Dashboard is the legacy shortcut kept for old bookmarks.
func Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tickets", http.StatusTemporaryRedirect)
	}
}
