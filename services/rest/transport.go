// Package rest is the transport collaborator: it performs authenticated
// HTTP calls against the platform API, unwraps the {data, message,
// pagination} envelope and surfaces failures as core.APIError. One network
// call per operation; no retries, no caching.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/friendsofgo/errors"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

const maxErrorBodyBytes = 1024

type Client struct {
	base string
	http *http.Client
	log  core.Logger

	mu    sync.RWMutex
	token string
}

func NewClient(conf *core.Config, log core.Logger) *Client {
	return &Client{
		base: strings.TrimRight(conf.API.BaseURL, "/"),
		http: &http.Client{Timeout: conf.API.Timeout},
		log:  log,
	}
}

type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Message    string             `json:"message,omitempty"`
	Pagination *entity.Pagination `json:"pagination,omitempty"`
}

// Login obtains a session token and attaches it to subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": core.CleanString(email, true), "password": password}
	if err := c.Post(ctx, "/auth/login", body, &out); err != nil {
		return err
	}
	c.SetToken(out.Token)
	return nil
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticated reports whether the client holds a token that has not
// expired yet. The signature is not verified here; the server does that.
func (c *Client) Authenticated() bool {
	token := c.Token()
	if token == "" {
		return false
	}
	claims := jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt == 0 || time.Now().Unix() < claims.ExpiresAt
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out interface{}) error {
	_, err := c.do(ctx, http.MethodGet, path, params, nil, out)
	return err
}

// GetPage is Get for paginated list endpoints; it also returns the
// envelope's pagination block.
func (c *Client) GetPage(ctx context.Context, path string, params url.Values, out interface{}) (*entity.Pagination, error) {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body, out)
	return err
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.do(ctx, http.MethodPatch, path, nil, body, out)
	return err
}

// Delete removes a resource; out may be nil, some endpoints respond with
// the updated parent record.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, out)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) (*entity.Pagination, error) {
	rdr, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	reqURL := c.base + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, rdr)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, &core.APIError{Status: 0, Message: "could not reach the platform API"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &core.APIError{Status: resp.StatusCode, Message: "malformed response body"}
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &core.APIError{Status: resp.StatusCode, Message: "malformed response data"}
		}
	}
	return env.Pagination, nil
}

func encodeBody(body interface{}) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		return b.Encode()
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, "", errors.Wrap(err, "encoding request body")
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}

// apiError extracts the server's `message` when the error body carries one;
// reads are capped, error bodies are not trusted to be small.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return &core.APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &core.APIError{Status: resp.StatusCode}
}
