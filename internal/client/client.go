// Package client is a typed Go client for the site API. It keeps the session
// cookie in a jar and caches GET responses by request path until a mutation
// invalidates them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Client talks to the API rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *QueryCache
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A fresh cookie jar is
// installed when it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client. baseURL is the server origin, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   NewQueryCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	return c, nil
}

// Cache exposes the query cache, mainly for inspection.
func (c *Client) Cache() *QueryCache {
	return c.cache
}

// query performs a cached GET of path and decodes into dst.
func (c *Client) query(ctx context.Context, path string, params url.Values, dst interface{}) error {
	key := path
	if len(params) > 0 {
		key += "?" + params.Encode()
	}
	if c.cache.Load(key, dst) {
		return nil
	}
	raw, err := c.do(ctx, http.MethodGet, key, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	c.cache.Store(key, raw)
	return nil
}

// get performs an uncached GET of path and decodes into dst.
func (c *Client) get(ctx context.Context, path string, dst interface{}) error {
	raw, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// mutate sends body as JSON and invalidates every cached query under the
// given path prefixes on success.
func (c *Client) mutate(ctx context.Context, method, path string, body, dst interface{}, invalidate ...string) error {
	var payload io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		payload = bytes.NewReader(b)
		contentType = "application/json"
	}
	raw, err := c.do(ctx, method, path, contentType, payload)
	if err != nil {
		return err
	}
	c.cache.Invalidate(invalidate...)
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body struct {
			Message string            `json:"message"`
			Fields  map[string]string `json:"fields"`
		}
		if json.Unmarshal(raw, &body) == nil && body.Message != "" {
			apiErr.Message = body.Message
			apiErr.Fields = body.Fields
		}
		return nil, apiErr
	}
	return raw, nil
}

// upload posts a multipart form with a single file field.
func (c *Client) upload(ctx context.Context, path, field, filename, contentType string, content io.Reader, dst interface{}) error {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	raw, err := c.do(ctx, http.MethodPost, path, w.FormDataContentType(), buf)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
