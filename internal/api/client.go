package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is the single point of outbound communication with the backend.
// Authenticated calls forward the browser's raw Cookie header so the backend
// can resolve the tenant session; the cookie value is opaque here and never
// parsed locally.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

func NewClient(base string, log zerolog.Logger) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
	}
}

// errorDetail is the backend's error body shape.
type errorDetail struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, op, method, path, cookie string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Op: op, cause: err}
		}
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, &Error{Op: op, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// No response at all: Status stays 0 so callers can tell a
		// transport failure from an HTTP-level one.
		return nil, &Error{Op: op, cause: err}
	}
	c.log.Debug().
		Str("op", op).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("backend call")
	return resp, nil
}

// failWithDetail drains resp and builds an *Error carrying the backend's
// detail message when the body is parsable, or the generic fallback.
func failWithDetail(op string, resp *http.Response) error {
	defer resp.Body.Close()
	var ed errorDetail
	if err := json.NewDecoder(resp.Body).Decode(&ed); err == nil && ed.Detail != "" {
		return &Error{Op: op, Status: resp.StatusCode, Detail: ed.Detail}
	}
	return &Error{Op: op, Status: resp.StatusCode}
}

// Login posts credentials and returns the signed-in user along with the
// backend's Set-Cookie values, which the caller relays to the browser.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*UserInfo, []*http.Cookie, error) {
	resp, err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", creds)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, failWithDetail("login", resp)
	}
	defer resp.Body.Close()
	var u UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, nil, &Error{Op: "login", cause: err}
	}
	return &u, resp.Cookies(), nil
}

// Logout posts a logout request. The response body is not interpreted; the
// Set-Cookie values (session clearing) are relayed to the browser.
func (c *Client) Logout(ctx context.Context, cookie string) ([]*http.Cookie, error) {
	resp, err := c.do(ctx, "logout", http.MethodPost, "/auth/logout", cookie, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.Cookies(), nil
}

// Me is the "am I logged in" probe. Any non-success status resolves to
// (nil, nil) rather than an error; only transport failures are reported.
func (c *Client) Me(ctx context.Context, cookie string) (*UserInfo, error) {
	resp, err := c.do(ctx, "session probe", http.MethodGet, "/auth/me", cookie, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	var u UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, &Error{Op: "session probe", cause: err}
	}
	return &u, nil
}

// Signup posts the tenant + admin-user creation payload.
func (c *Client) Signup(ctx context.Context, payload SignupPayload) (*SignupResult, error) {
	resp, err := c.do(ctx, "signup", http.MethodPost, "/tenants/signup", "", payload)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, failWithDetail("signup", resp)
	}
	defer resp.Body.Close()
	var res SignupResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, &Error{Op: "signup", cause: err}
	}
	return &res, nil
}

// Tickets fetches the full ticket collection visible to the session.
func (c *Client) Tickets(ctx context.Context, cookie string) ([]Ticket, error) {
	resp, err := c.do(ctx, "fetch tickets", http.MethodGet, "/tickets/", cookie, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{Op: "fetch tickets", Status: resp.StatusCode}
	}
	var out []Ticket
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Op: "fetch tickets", cause: err}
	}
	return out, nil
}

// TicketByID fetches one ticket including its message thread.
func (c *Client) TicketByID(ctx context.Context, cookie string, id int) (*Ticket, error) {
	op := fmt.Sprintf("fetch ticket %d", id)
	resp, err := c.do(ctx, op, http.MethodGet, fmt.Sprintf("/tickets/%d", id), cookie, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{Op: op, Status: resp.StatusCode}
	}
	var t Ticket
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, &Error{Op: op, cause: err}
	}
	return &t, nil
}
