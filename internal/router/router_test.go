package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft-network/deskpro/internal/api"
	"github.com/soft-network/deskpro/internal/config"
	"github.com/soft-network/deskpro/internal/view"
)

// fakeBackend simulates the helpdesk REST API. An empty session map entry
// means every authenticated call 401s.
type fakeBackend struct {
	authorized bool
	tickets    string // JSON for GET /tickets/
	ticketByID map[string]string
	failList   int // non-zero forces this status on GET /tickets/
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"email":"jane@acme.io","full_name":"Jane Doe"}`))
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds api.LoginCredentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "letmein" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid credentials"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok"})
		w.Write([]byte(`{"email":"jane@acme.io","full_name":"Jane Doe"}`))
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "", MaxAge: -1})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/tickets/", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/tickets/")
		if id == "" {
			if f.failList != 0 {
				w.WriteHeader(f.failList)
				return
			}
			w.Write([]byte(f.tickets))
			return
		}
		if body, ok := f.ticketByID[id]; ok {
			w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	return mux
}

func newTestServer(t *testing.T, f *fakeBackend) *httptest.Server {
	t.Helper()
	backend := httptest.NewServer(f.handler())
	t.Cleanup(backend.Close)

	cfg := config.Config{
		Env:          "test",
		BackendURL:   backend.URL,
		PublicAPIURL: backend.URL,
		Origin:       "http://localhost:3000",
		TemplateDir:  "../../web/templates",
		StaticDir:    "../../web/static",
	}
	renderer, err := view.NewRenderer(cfg.TemplateDir, cfg.PublicAPIURL, zerolog.Nop())
	require.NoError(t, err)

	client := api.NewClient(cfg.BackendURL, zerolog.Nop())
	srv := httptest.NewServer(New(zerolog.Nop(), client, renderer, cfg))
	t.Cleanup(srv.Close)
	return srv
}

// noRedirect returns a client that reports redirects instead of following.
func noRedirect() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

const ticketSeven = `{
	"id": 7, "subject": "Broken widget", "customerName": "Alice",
	"customerEmail": "alice@x.io", "status": "open", "priority": "high",
	"channel": "email", "assignee": "Tom", "tags": ["billing"],
	"createdAt": "2026-08-01T10:00:00Z", "updatedAt": "2026-08-02T10:00:00Z",
	"messages": [
		{"id": "m1", "sender": "Alice", "body": "It broke", "timestamp": "2026-08-01T10:00:00Z"},
		{"id": "m2", "sender": "Tom", "body": "Looking into it", "timestamp": "2026-08-01T11:00:00Z"}
	]
}`

func TestDashboardRedirectsToTickets(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{authorized: true, tickets: "[]"})

	resp, err := noRedirect().Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/tickets", resp.Header.Get("Location"))
}

func TestTicketListUnauthenticatedRedirects(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{authorized: false})

	resp, err := noRedirect().Get(srv.URL + "/tickets")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestTicketListRendersRows(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{
		authorized: true,
		tickets: `[
			{"id": 1, "subject": "Cannot log in", "customerName": "Bob", "status": "pending", "priority": "low", "channel": "email", "assignee": "Tom", "tags": [], "createdAt": "2026-08-01T12:00:00Z", "updatedAt": "2026-08-01T12:00:00Z", "messages": []},
			{"id": 2, "subject": "Refund request", "customerName": "Carol", "status": "closed", "priority": "medium", "channel": "chat", "assignee": "Ina", "tags": [], "createdAt": "2026-08-03T15:30:00Z", "updatedAt": "2026-08-03T15:30:00Z", "messages": []}
		]`,
	})

	resp, err := http.Get(srv.URL + "/tickets")
	require.NoError(t, err)
	html := body(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Cannot log in")
	assert.Contains(t, html, "Refund request")
	assert.Contains(t, html, "2 tickets total")
	assert.Contains(t, html, "Jane Doe", "top-nav shows the probed identity")
}

func TestTicketListFilterQuery(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{
		authorized: true,
		tickets: `[
			{"id": 1, "subject": "Cannot log in", "customerName": "Bob", "status": "pending", "priority": "low", "channel": "email", "assignee": "Tom", "tags": [], "createdAt": "2026-08-01T12:00:00Z", "updatedAt": "2026-08-01T12:00:00Z", "messages": []},
			{"id": 2, "subject": "Refund request", "customerName": "Carol", "status": "closed", "priority": "medium", "channel": "chat", "assignee": "Ina", "tags": [], "createdAt": "2026-08-03T15:30:00Z", "updatedAt": "2026-08-03T15:30:00Z", "messages": []}
		]`,
	})

	resp, err := http.Get(srv.URL + "/tickets?q=refund")
	require.NoError(t, err)
	html := body(t, resp)
	assert.Contains(t, html, "Refund request")
	assert.NotContains(t, html, "Cannot log in")
}

func TestTicketListBackendFailureShowsBanner(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{authorized: true, failList: http.StatusInternalServerError})

	resp, err := http.Get(srv.URL + "/tickets")
	require.NoError(t, err)
	html := body(t, resp)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, html, "fetch tickets failed: 500")
}

func TestTicketDetailStatuses(t *testing.T) {
	f := &fakeBackend{authorized: true, ticketByID: map[string]string{"7": ticketSeven}}
	srv := newTestServer(t, f)

	t.Run("found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/tickets/7")
		require.NoError(t, err)
		html := body(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, html, "Broken widget")
		assert.Contains(t, html, "Looking into it")
		// Tom is not the customer, so his message carries the agent tag.
		assert.Contains(t, html, "Agent")
	})

	t.Run("missing renders not-found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/tickets/999")
		require.NoError(t, err)
		html := body(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, html, "Ticket not found")
	})

	t.Run("non-numeric id renders not-found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/tickets/abc")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestTicketDetailUnauthenticatedRedirects(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{authorized: false})

	resp, err := noRedirect().Get(srv.URL + "/tickets/7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{authorized: true, tickets: "[]"})

	t.Run("bad credentials render the detail banner", func(t *testing.T) {
		resp, err := noRedirect().PostForm(srv.URL+"/login", url.Values{
			"email": {"jane@acme.io"}, "tenant_slug": {"acme"}, "password": {"wrong"},
		})
		require.NoError(t, err)
		html := body(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, html, "Invalid credentials")
		assert.Contains(t, html, `value="jane@acme.io"`, "form keeps the typed email")
	})

	t.Run("success relays the session cookie and redirects", func(t *testing.T) {
		resp, err := noRedirect().PostForm(srv.URL+"/login", url.Values{
			"email": {"jane@acme.io"}, "tenant_slug": {"acme"}, "password": {"letmein"},
		})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/tickets", resp.Header.Get("Location"))

		cookies := resp.Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session", cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
	})
}

func TestLogoutAlwaysLandsOnLogin(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{authorized: true})

	resp, err := noRedirect().Post(srv.URL+"/logout", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestReplyStub(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{authorized: true, ticketByID: map[string]string{"7": ticketSeven}})

	t.Run("content is acknowledged but not sent", func(t *testing.T) {
		resp, err := noRedirect().PostForm(srv.URL+"/tickets/7/reply", url.Values{
			"body": {"<div>On it, <b>today</b></div>"},
		})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/tickets/7?reply=unsent", resp.Header.Get("Location"))
	})

	t.Run("blank reply bounces back", func(t *testing.T) {
		resp, err := noRedirect().PostForm(srv.URL+"/tickets/7/reply", url.Values{
			"body": {"<div><br></div>"},
		})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, "/tickets/7?reply=empty", resp.Header.Get("Location"))
	})
}

func TestSessionProbe(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		srv := newTestServer(t, &fakeBackend{authorized: true})
		resp, err := http.Get(srv.URL + "/api/session")
		require.NoError(t, err)
		defer resp.Body.Close()

		var out struct {
			Authenticated bool          `json:"authenticated"`
			User          *api.UserInfo `json:"user"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, out.Authenticated)
		require.NotNil(t, out.User)
		assert.Equal(t, "Jane Doe", out.User.FullName)
	})

	t.Run("signed out is 200, not 401", func(t *testing.T) {
		srv := newTestServer(t, &fakeBackend{authorized: false})
		resp, err := http.Get(srv.URL + "/api/session")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, false, out["authenticated"])
	})
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), `"status":"ok"`)
}

func TestPaginationLinks(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 1; i <= 25; i++ {
		if i > 1 {
			sb.WriteString(",")
		}
		n := strconv.Itoa(i)
		sb.WriteString(`{"id": ` + n + `, "subject": "T` + n + `", "customerName": "C", "status": "open", "priority": "low", "channel": "email", "assignee": "A", "tags": [], "createdAt": "2026-08-01T12:00:00Z", "updatedAt": "2026-08-01T12:00:00Z", "messages": []}`)
	}
	sb.WriteString("]")

	srv := newTestServer(t, &fakeBackend{authorized: true, tickets: sb.String()})

	resp, err := http.Get(srv.URL + "/tickets?page=3")
	require.NoError(t, err)
	html := body(t, resp)
	assert.Contains(t, html, "Page 3 of 3")
	assert.Contains(t, html, "T21")
	assert.NotContains(t, html, `>T20<`)
	// Next is disabled on the last page, previous stays a link.
	assert.Contains(t, html, `<span class="pager-btn disabled">Next</span>`)
	assert.Contains(t, html, `href="/tickets?page=2"`)
}
