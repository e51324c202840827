// Package httpbackend implements client.Backend over the portal's REST API.
package httpbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/utdisa/isa-portal/client"
)

const defaultTimeout = 30 * time.Second

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAPIKey sends key in the apikey header of every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithAccessToken starts the client with an existing session token.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Client holds the base URL and the access token of the current session in memory.
type Client struct {
	base   *url.URL
	http   *http.Client
	apiKey string

	mu    sync.RWMutex
	token string
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Auth() client.Auth       { return authAPI{c} }
func (c *Client) Tables() client.Tables   { return tablesAPI{c} }
func (c *Client) Storage() client.Storage { return storageAPI{c} }

// AccessToken returns the token of the current session, if any.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) endpoint(query url.Values, elem ...string) string {
	u := c.base.JoinPath(elem...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends the request and decodes a JSON reply into out when out is not nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &client.APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", client.ErrDecode, req.URL.Path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, endpoint, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// errorMessage extracts the human readable text from an error body.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
		Msg              string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.ErrorDescription, payload.Message, payload.Msg, payload.Error} {
			if m != "" {
				return m
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 512 {
		return text
	}
	return http.StatusText(status)
}

type authAPI struct{ c *Client }

type tokenResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int              `json:"expires_in"`
	User        *client.AuthUser `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a authAPI) Session(ctx context.Context) (*client.AuthUser, error) {
	if a.c.AccessToken() == "" {
		return nil, nil
	}
	var user client.AuthUser
	err := a.c.doJSON(ctx, http.MethodGet, a.c.endpoint(nil, "auth", "v1", "user"), nil, &user)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			a.c.setToken("")
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (a authAPI) SignIn(ctx context.Context, email, password string) (*client.AuthUser, error) {
	q := url.Values{"grant_type": {"password"}}
	var resp tokenResponse
	if err := a.c.doJSON(ctx, http.MethodPost, a.c.endpoint(q, "auth", "v1", "token"), credentials{email, password}, &resp); err != nil {
		return nil, err
	}
	a.c.setToken(resp.AccessToken)
	return resp.User, nil
}

func (a authAPI) SignUp(ctx context.Context, email, password string) (*client.AuthUser, error) {
	var resp tokenResponse
	if err := a.c.doJSON(ctx, http.MethodPost, a.c.endpoint(nil, "auth", "v1", "signup"), credentials{email, password}, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken != "" {
		a.c.setToken(resp.AccessToken)
	}
	return resp.User, nil
}

func (a authAPI) SignOut(ctx context.Context) error {
	if a.c.AccessToken() == "" {
		return nil
	}
	err := a.c.doJSON(ctx, http.MethodPost, a.c.endpoint(nil, "auth", "v1", "logout"), nil, nil)
	a.c.setToken("")
	return err
}

func (a authAPI) ResetPasswordForEmail(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return a.c.doJSON(ctx, http.MethodPost, a.c.endpoint(nil, "auth", "v1", "recover"), body, nil)
}

type tablesAPI struct{ c *Client }

func (t tablesAPI) Insert(ctx context.Context, table string, row any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := t.c.doJSON(ctx, http.MethodPost, t.c.endpoint(nil, "rest", "v1", table), row, &raw); err != nil {
		return nil, err
	}
	return firstRow(raw)
}

// firstRow accepts either a single object or an array holding the inserted row.
func firstRow(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return raw, nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrDecode, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (t tablesAPI) Select(ctx context.Context, table string, q client.Query) ([]json.RawMessage, error) {
	params := filterValues(q.Filters)
	params.Set("select", "*")
	if q.OrderBy != "" {
		dir := "desc"
		if q.Ascending {
			dir = "asc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	var rows []json.RawMessage
	if err := t.c.doJSON(ctx, http.MethodGet, t.c.endpoint(params, "rest", "v1", table), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t tablesAPI) Delete(ctx context.Context, table string, filters ...client.Filter) error {
	if len(filters) == 0 {
		return errors.New("delete without a filter is not allowed")
	}
	return t.c.doJSON(ctx, http.MethodDelete, t.c.endpoint(filterValues(filters), "rest", "v1", table), nil, nil)
}

func filterValues(filters []client.Filter) url.Values {
	v := url.Values{}
	for _, f := range filters {
		v.Add(f.Column, "eq."+f.Value)
	}
	return v
}

type storageAPI struct{ c *Client }

func (s storageAPI) Upload(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	endpoint := s.c.endpoint(nil, "storage", "v1", "object", bucket, key)
	req, err := s.c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(data), contentType)
	if err != nil {
		return "", err
	}
	var stored struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := s.c.do(req, &stored); err != nil {
		return "", err
	}
	// the server files uploads under the caller's prefix, so its key wins
	switch {
	case stored.URL != "":
		return stored.URL, nil
	case stored.Key != "":
		return s.PublicURL(bucket, stored.Key), nil
	}
	return s.PublicURL(bucket, key), nil
}

func (s storageAPI) PublicURL(bucket, key string) string {
	return s.c.endpoint(nil, "storage", "v1", "object", "public", bucket, key)
}
