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
	"strings"
	"time"
)

// ErrUnauthorized is returned for any 401. Callers should drop the session
// and send the user back to sign-in.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response carrying the server's error body.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// CodeOf returns the server error code carried by err, or "".
func CodeOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// TokenSource yields the identity token sent as the bearer credential.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a token obtained out of band.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	cache   *queryCache
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCacheTTL sets how long GET results are reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache.ttl = ttl }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 90 * time.Second},
		tokens:  tokens,
		cache:   newQueryCache(30 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset drops every cached query, e.g. after switching accounts.
func (c *Client) Reset() {
	c.cache.clear()
}

// query is a cached GET keyed by a logical query id.
func (c *Client) query(ctx context.Context, key, path string, out any) error {
	if raw, ok := c.cache.get(key); ok {
		return json.Unmarshal(raw, out)
	}

	raw, err := c.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	c.cache.set(key, raw)
	return json.Unmarshal(raw, out)
}

// mutate sends a JSON body and invalidates the given query ids on success.
func (c *Client) mutate(ctx context.Context, method, path string, in, out any, invalidates ...string) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	raw, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	c.cache.invalidate(invalidates...)

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// FilePart is a file attached to a multipart request.
type FilePart struct {
	Name string
	Data []byte
}

func (c *Client) upload(ctx context.Context, path string, fields map[string]string, file *FilePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile("file", file.Name)
		if err != nil {
			return err
		}
		if _, err := fw.Write(file.Data); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	raw, err := c.send(ctx, http.MethodPost, path, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("get token: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.cache.clear()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return raw, nil
}
