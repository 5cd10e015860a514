// Package view renders pongo2 templates and registers the presentational
// helpers (badges, initials, relative dates) as template globals.
package view

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"
)

type Renderer struct {
	set *pongo2.TemplateSet
	log zerolog.Logger
}

// NewRenderer builds a template set rooted at dir and registers the helper
// globals every page uses. publicAPIBase is the browser-facing API base
// injected into pages for client-issued calls.
func NewRenderer(dir, publicAPIBase string, log zerolog.Logger) (*Renderer, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, err
	}
	set := pongo2.NewSet("deskpro", loader)

	set.Globals["public_api_base"] = publicAPIBase
	set.Globals["initials"] = Initials
	set.Globals["status_class"] = StatusClass
	set.Globals["priority_class"] = PriorityClass
	set.Globals["channel_icon"] = ChannelIcon
	set.Globals["time_ago"] = TimeAgo
	set.Globals["format_date"] = FormatDate

	return &Renderer{set: set, log: log}, nil
}

// HTML renders name with data and writes it with the given status. Template
// failures become a plain 500; there is nothing sensible to render instead.
func (r *Renderer) HTML(w http.ResponseWriter, code int, name string, data pongo2.Context) {
	tmpl, err := r.set.FromCache(name)
	if err != nil {
		r.log.Error().Err(err).Str("template", name).Msg("template load")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out, err := tmpl.ExecuteBytes(data)
	if err != nil {
		r.log.Error().Err(err).Str("template", name).Msg("template render")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(out)
}
