// Package gateway is the single chokepoint for calls to the clinic API. It
// turns non-success responses into a RemoteError, skips decoding for empty
// responses, and reports every failure to the user before returning it.
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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/speedmed/clinic-console/internal/platform/telemetry"
	"github.com/speedmed/clinic-console/internal/platform/view"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// Requester is what entity APIs need from the gateway.
type Requester interface {
	Do(ctx context.Context, method, path string, in, out interface{}) error
}

// Options is the options bag of a raw request.
type Options struct {
	Method string
	Header http.Header
	Body   []byte
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	notifier   view.Notifier
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a client-wide timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithNotifier sets who is told about failures.
func WithNotifier(n view.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		notifier:   view.NotifierFunc(func(string) {}),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root every path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Request performs a call against a fully-qualified endpoint and returns the
// JSON body, or nil when the response carries no content.
func (c *Client) Request(ctx context.Context, endpoint string, opt Options) (json.RawMessage, error) {
	body, err := c.request(ctx, endpoint, opt)
	if err != nil {
		return nil, c.fail(opt.Method, endpoint, err)
	}
	return body, nil
}

// Do sends in as JSON (when non-nil) to path under the base URL and decodes
// the response into out (when non-nil and the response has a body).
func (c *Client) Do(ctx context.Context, method, path string, in, out interface{}) error {
	endpoint := c.baseURL + path
	opt := Options{Method: method, Header: http.Header{}}
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return c.fail(method, endpoint, fmt.Errorf("encode request: %w", err))
		}
		opt.Body = data
		opt.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.Request(ctx, endpoint, opt)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.fail(method, endpoint, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) request(ctx context.Context, endpoint string, opt Options) (json.RawMessage, error) {
	method := opt.Method
	if method == "" {
		method = http.MethodGet
	}
	rid := uuid.NewString()

	ctx, span := telemetry.StartSpan(ctx, method+" "+pathOf(endpoint),
		attribute.String("http.method", method),
		attribute.String("http.url", endpoint),
		attribute.String("request_id", rid),
	)
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	var reqBody io.Reader
	if opt.Body != nil {
		reqBody = bytes.NewReader(opt.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	for k, vs := range opt.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set(RequestIDHeader, rid)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", method, endpoint, err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug().
		Str("request_id", rid).
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api call")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("read response: %w", err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = newRemoteError(resp.StatusCode, data)
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// fail logs and reports err, returning it marked as notified. Every failure
// passes through here exactly once.
func (c *Client) fail(method, endpoint string, err error) error {
	evt := c.logger.Error().Err(err).Str("method", method).Str("url", endpoint)
	if status := StatusOf(err); status != 0 {
		evt = evt.Int("status", status)
	}
	evt.Msg("api call failed")
	c.notifier.Alert("API error: " + Message(err))
	return &notified{err: err}
}

// Path joins escaped segments into an absolute path: Path("consultas",
// "CRM 1", 5) is "/consultas/CRM%201/5".
func Path(segments ...interface{}) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(fmt.Sprint(s)))
	}
	return b.String()
}

func pathOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Path == "" {
		return endpoint
	}
	return u.Path
}
