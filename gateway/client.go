// Package gateway is the REST client for the DormDash backend. Every call is
// a single attempt bounded only by the caller's context.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const DefaultBaseURL = "https://dormdashbackend.onrender.com"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
	Logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

// New builds a client for baseURL. A nil token store means requests are
// never authenticated.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Tokens:     tokens,
		Logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens returns a copy of the client that authenticates with tokens.
// The shell shares one client and scopes it per session this way.
func (c *Client) WithTokens(tokens TokenStore) *Client {
	cp := *c
	cp.Tokens = tokens
	return &cp
}

// Response is a successful backend reply.
type Response struct {
	Status int
	Body   []byte
	JSON   any
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (r *Response) Text() string {
	return string(r.Body)
}

// Do sends a request with an optional JSON body. path may be absolute.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, contentType, reader)
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if c.Tokens != nil {
		token, ok, err := c.Tokens.Token(ctx)
		if err != nil {
			c.Logger.Warn("token lookup failed, sending unauthenticated", "path", path, "err", err)
		} else if ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	parsed := parseBody(raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Logger.Debug("backend error", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &HTTPError{Status: resp.StatusCode, Body: parsed}
	}
	return &Response{Status: resp.StatusCode, Body: raw, JSON: parsed}, nil
}

// parseBody yields the decoded JSON value, the raw text when the body is not
// JSON, or nil for an empty body.
func parseBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// decodeList reads either a bare array or an envelope holding the array
// under data, items or products.
func decodeList[T any](r *Response) ([]T, error) {
	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	for _, key := range []string{"data", "items", "products"} {
		v, ok := env[key]
		if !ok {
			continue
		}
		var out []T
		if err := json.Unmarshal(v, &out); err != nil {
			return nil, fmt.Errorf("decode list %q: %w", key, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("decode list: no array in response")
}

// decodeOne reads an object that may be wrapped in a data or product
// envelope.
func decodeOne[T any](r *Response) (T, error) {
	var out T
	var env map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &env); err == nil {
		for _, key := range []string{"data", "product"} {
			if v, ok := env[key]; ok && len(v) > 0 && v[0] == '{' {
				if err := json.Unmarshal(v, &out); err != nil {
					return out, fmt.Errorf("decode %q: %w", key, err)
				}
				return out, nil
			}
		}
	}
	if err := r.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
