package handlers

import (
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"

	"github.com/soft-network/deskpro/internal/api"
	"github.com/soft-network/deskpro/internal/view"
)

// AuthHTTP serves the login/register forms and relays session cookies
// between the backend and the browser. Credentials are never stored here.
type AuthHTTP struct {
	api  *api.Client
	view *view.Renderer
	log  zerolog.Logger
}

func NewAuthHTTP(c *api.Client, v *view.Renderer, log zerolog.Logger) *AuthHTTP {
	return &AuthHTTP{api: c, view: v, log: log}
}

// relayCookies forwards backend Set-Cookie values (session issue or
// clearing) to the browser verbatim.
func relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		http.SetCookie(w, c)
	}
}

func (h *AuthHTTP) LoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := pongo2.Context{}
		if r.URL.Query().Get("created") != "" {
			ctx["notice"] = "Account created. Sign in to continue."
		}
		h.view.HTML(w, http.StatusOK, "login.html", ctx)
	}
}

func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.view.HTML(w, http.StatusBadRequest, "login.html", pongo2.Context{"error": "invalid form submission"})
			return
		}
		creds := api.LoginCredentials{
			Email:      strings.TrimSpace(r.PostFormValue("email")),
			TenantSlug: strings.TrimSpace(r.PostFormValue("tenant_slug")),
			Password:   r.PostFormValue("password"),
		}

		_, cookies, err := h.api.Login(r.Context(), creds)
		if err != nil {
			// Backend detail (e.g. "Invalid credentials") goes into the
			// banner verbatim; transport failures get the generic message.
			h.view.HTML(w, http.StatusOK, "login.html", pongo2.Context{
				"error": err.Error(),
				"email": creds.Email,
				"slug":  creds.TenantSlug,
			})
			return
		}

		relayCookies(w, cookies)
		http.Redirect(w, r, "/tickets", http.StatusSeeOther)
	}
}

func (h *AuthHTTP) RegisterPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.view.HTML(w, http.StatusOK, "register.html", pongo2.Context{})
	}
}

func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.view.HTML(w, http.StatusBadRequest, "register.html", pongo2.Context{"error": "invalid form submission"})
			return
		}
		payload := api.SignupPayload{
			Name:          strings.TrimSpace(r.PostFormValue("name")),
			Slug:          strings.ToLower(strings.TrimSpace(r.PostFormValue("slug"))),
			AdminFullName: strings.TrimSpace(r.PostFormValue("admin_full_name")),
			AdminEmail:    strings.TrimSpace(r.PostFormValue("admin_email")),
			AdminPassword: r.PostFormValue("admin_password"),
		}

		if _, err := h.api.Signup(r.Context(), payload); err != nil {
			h.view.HTML(w, http.StatusOK, "register.html", pongo2.Context{
				"error": err.Error(),
				"form":  payload,
			})
			return
		}

		http.Redirect(w, r, "/login?created=1", http.StatusSeeOther)
	}
}

// Logout fires the backend logout and redirects to the login screen
// unconditionally; a failed logout still lands the user on /login.
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookies, err := h.api.Logout(r.Context(), r.Header.Get("Cookie"))
		if err != nil {
			h.log.Warn().Err(err).Msg("logout call failed")
		}
		relayCookies(w, cookies)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
