package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/backoffice/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-call identifier for correlating client and
// server logs.
const RequestIDHeader = "X-Request-ID"

// Gateway is the single channel to the backend. The base address is fixed
// at construction; everything else is per call.
type Gateway struct {
	base   *url.URL
	client *http.Client
	log    logging.Logger
}

type Option func(*Gateway)

// WithHTTPClient replaces the underlying client. Apply before WithCredentials
// so the decorator wraps the replacement's transport.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		cp := *c
		g.client = &cp
	}
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.client.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// WithCredentials installs the Credentials decorator around the current
// transport.
func WithCredentials(tokens TokenSource) Option {
	return func(g *Gateway) {
		g.client.Transport = Credentials(tokens, g.client.Transport)
	}
}

// New validates baseURL (absolute http or https) and applies opts in order.
func New(baseURL string, opts ...Option) (*Gateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: want http(s)://host[/path]", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery, u.Fragment = "", ""

	g := &Gateway{base: u, client: &http.Client{}, log: logging.Discard()}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// BaseURL returns the configured base address.
func (g *Gateway) BaseURL() string {
	return g.base.String()
}

func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

func (g *Gateway) Post(ctx context.Context, path string, in, out any) error {
	return g.Do(ctx, http.MethodPost, path, in, out)
}

func (g *Gateway) Put(ctx context.Context, path string, in, out any) error {
	return g.Do(ctx, http.MethodPut, path, in, out)
}

func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends one request. in, when non-nil, is JSON-encoded as the body; out,
// when non-nil, receives the decoded 2xx body. Non-2xx answers come back as
// *StatusError, transport failures match ErrUnavailable. There is no retry.
func (g *Gateway) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.resolve(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Debug(ctx, "api call failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return &transportError{err: err}
	}
	defer resp.Body.Close()

	g.log.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &transportError{err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: data}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// resolve appends path to the base path, keeping any trailing slash the
// backend routes depend on.
func (g *Gateway) resolve(path string) string {
	u := *g.base
	p, q, _ := strings.Cut(path, "?")
	u.Path = g.base.Path + "/" + strings.TrimLeft(p, "/")
	u.RawPath = ""
	u.RawQuery = q
	return u.String()
}
