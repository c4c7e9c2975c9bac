// Package coffee is the REST client for the coffee shop backend.
package coffee

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apierrors "github.com/Apurer/coffee-admin/internal/shared/errors"
)

// DefaultTimeout bounds every request when no client is supplied.
const DefaultTimeout = 30 * time.Second

// HeaderRequestID carries a per-request identifier for log correlation.
const HeaderRequestID = "X-Request-ID"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Problem *apierrors.ProblemDetail
}

func (e *StatusError) Error() string {
	if e.Problem != nil {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Problem.Error())
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// StatusCode reports the HTTP status of the failed response.
func (e *StatusError) StatusCode() int { return e.Status }

func (e *StatusError) Unwrap() error {
	if e.Problem == nil {
		return nil
	}
	return *e.Problem
}

// Client talks to /api/products, /api/members, /api/orders and /uploads.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRequestIDs overrides how X-Request-ID values are generated.
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// New builds a client for the backend at origin, e.g. http://localhost:8080.
func New(origin string, opts ...Option) (*Client, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil, errors.New("api origin is required")
	}
	base, err := url.Parse(strings.TrimRight(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api origin: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api origin %q must be an absolute URL", origin)
	}
	c := &Client{
		base: base,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Origin returns the backend origin images are resolved against.
func (c *Client) Origin() string { return c.base.String() }

func (c *Client) Products() *ProductsAPI { return &ProductsAPI{c: c} }

func (c *Client) Members() *MembersAPI { return &MembersAPI{c: c} }

func (c *Client) Orders() *OrdersAPI { return &OrdersAPI{c: c} }

// FetchUpload downloads a previously uploaded image. p may be a stored
// relative path or an absolute URL.
func (c *Client) FetchUpload(ctx context.Context, p string) (io.ReadCloser, error) {
	if strings.TrimSpace(p) == "" {
		return nil, errors.New("empty image path")
	}
	target := p
	if !strings.HasPrefix(p, "http") {
		target = c.base.String() + "/uploads/" + strings.TrimLeft(p, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// resourcePath joins a collection path with a styled id path parameter.
func resourcePath(collection string, id int64, suffix ...string) (string, error) {
	seg, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("encode id: %w", err)
	}
	return strings.Join(append([]string{collection, seg}, suffix...), "/"), nil
}

func (c *Client) newRequest(ctx context.Context, method, p string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + p
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, p, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// doJSON sends in as a JSON body (when non-nil) and decodes the response
// into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, p string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, p, err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := c.newRequest(ctx, method, p, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.decode(req, out)
}

func (c *Client) decode(req *http.Request, out any) error {
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// send performs req and converts non-2xx responses into *StatusError.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	req.Header.Set(HeaderRequestID, c.requestID())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	serr := &StatusError{Method: req.Method, Path: req.URL.Path, Status: resp.StatusCode}
	if isJSON(resp.Header.Get("Content-Type")) {
		var problem apierrors.ProblemDetail
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&problem); err == nil && problem.Title != "" {
			serr.Problem = &problem
		}
	}
	return nil, serr
}

func isJSON(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, apierrors.ContentTypeProblemJSON) || strings.HasPrefix(ct, "application/json")
}
