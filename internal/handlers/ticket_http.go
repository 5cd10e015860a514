package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/soft-network/deskpro/internal/api"
	"github.com/soft-network/deskpro/internal/composer"
	"github.com/soft-network/deskpro/internal/table"
	"github.com/soft-network/deskpro/internal/utils"
	"github.com/soft-network/deskpro/internal/view"
)

// TicketHTTP serves the dashboard: ticket list with sortable/filterable
// table and the ticket detail thread. Every request fetches fresh from the
// backend with the browser's forwarded session cookie.
type TicketHTTP struct {
	api  *api.Client
	view *view.Renderer
	log  zerolog.Logger
}

func NewTicketHTTP(c *api.Client, v *view.Renderer, log zerolog.Logger) *TicketHTTP {
	return &TicketHTTP{api: c, view: v, log: log}
}

var columnLabels = map[string]string{
	"id":       "ID",
	"subject":  "Subject",
	"customer": "Customer",
	"status":   "Status",
	"priority": "Priority",
	"channel":  "Channel",
	"assignee": "Assignee",
	"created":  "Created",
}

// headerLink is one sortable column header: its label plus the URL encoding
// the next sort state for a click on it.
type headerLink struct {
	Key    string
	Label  string
	URL    string
	Active bool
	Dir    string
}

func listURL(q string, s table.Sort, page int) string {
	v := url.Values{}
	if q != "" {
		v.Set("q", q)
	}
	if s.Dir != table.None {
		v.Set("sort", s.Column)
		v.Set("dir", s.Dir.String())
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page + 1))
	}
	if enc := v.Encode(); enc != "" {
		return "/tickets?" + enc
	}
	return "/tickets"
}

func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie := r.Header.Get("Cookie")

		tickets, err := h.api.Tickets(r.Context(), cookie)
		if err != nil {
			if api.IsUnauthorized(err) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			h.view.HTML(w, http.StatusBadGateway, "error.html", pongo2.Context{
				"message": err.Error(),
				"user":    h.currentUser(r),
			})
			return
		}

		qv := r.URL.Query()
		q := strings.TrimSpace(qv.Get("q"))
		s := table.Sort{Column: qv.Get("sort"), Dir: table.ParseDirection(qv.Get("dir"))}
		pageIdx := utils.QueryInt(qv, "page", 1) - 1

		page := table.View(tickets, s, q, pageIdx, table.DefaultPageSize)

		headers := make([]headerLink, 0, len(table.Columns))
		for _, col := range table.Columns {
			next := table.NextSort(s, col)
			// A sort change restarts at the first page, like a new filter.
			headers = append(headers, headerLink{
				Key:    col,
				Label:  columnLabels[col],
				URL:    listURL(q, next, 0),
				Active: s.Column == col && s.Dir != table.None,
				Dir:    s.Dir.String(),
			})
		}

		ctx := pongo2.Context{
			"user":    h.currentUser(r),
			"tickets": page.Rows,
			"total":   len(tickets),
			"q":       q,
			"headers": headers,
			"page":    page,
			"pageNum": page.Index + 1,
		}
		if page.HasPrev {
			ctx["prevURL"] = listURL(q, s, page.Index-1)
		}
		if page.HasNext {
			ctx["nextURL"] = listURL(q, s, page.Index+1)
		}
		h.view.HTML(w, http.StatusOK, "tickets.html", ctx)
	}
}

func (h *TicketHTTP) Detail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			h.notFound(w, r)
			return
		}

		t, err := h.api.TicketByID(r.Context(), r.Header.Get("Cookie"), id)
		switch {
		case err == nil:
		case api.IsUnauthorized(err):
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		case api.IsNotFound(err):
			h.notFound(w, r)
			return
		default:
			h.view.HTML(w, http.StatusBadGateway, "error.html", pongo2.Context{
				"message": err.Error(),
				"user":    h.currentUser(r),
			})
			return
		}

		notice := ""
		switch r.URL.Query().Get("reply") {
		case "unsent":
			notice = "Sending replies is not available yet."
		case "empty":
			notice = "Reply is empty."
		}

		h.view.HTML(w, http.StatusOK, "ticket_detail.html", pongo2.Context{
			"user":   h.currentUser(r),
			"ticket": t,
			"notice": notice,
		})
	}
}

// Reply accepts the composer's submission. There is no backend endpoint for
// posting messages yet, so the content is sanitized, checked for emptiness
// and dropped.
func (h *TicketHTTP) Reply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/tickets/"+id, http.StatusSeeOther)
			return
		}

		body, err := composer.Sanitize(r.PostFormValue("body"))
		if err != nil || composer.IsBlank(body) {
			http.Redirect(w, r, fmt.Sprintf("/tickets/%s?reply=empty", id), http.StatusSeeOther)
			return
		}

		h.log.Debug().Str("ticket", id).Int("bytes", len(body)).Msg("reply composed, send not implemented")
		http.Redirect(w, r, fmt.Sprintf("/tickets/%s?reply=unsent", id), http.StatusSeeOther)
	}
}

func (h *TicketHTTP) notFound(w http.ResponseWriter, r *http.Request) {
	h.view.HTML(w, http.StatusNotFound, "not_found.html", pongo2.Context{
		"user": h.currentUser(r),
	})
}

// currentUser probes the session for the top-nav identity; nil renders the
// signed-out state. The probe never fails the page.
func (h *TicketHTTP) currentUser(r *http.Request) *api.UserInfo {
	u, err := h.api.Me(r.Context(), r.Header.Get("Cookie"))
	if err != nil {
		h.log.Warn().Err(err).Msg("session probe failed")
		return nil
	}
	return u
}
