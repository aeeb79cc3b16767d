// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every request unless WithTimeout or WithHTTPClient says otherwise.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "fuseki-manager/1.0"

// Transport issues HTTP requests against a Fuseki server and maps response
// statuses to typed errors. It is shared by the admin, data and SPARQL clients
// and is safe for concurrent use.
type Transport struct {
	cfg       Config
	baseURI   string
	client    *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    *slog.Logger
	userAgent string
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient replaces the underlying HTTP client. The client is used as
// is: WithTimeout does not modify it.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout sets the per-request timeout of the HTTP client the transport
// builds itself. It has no effect together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithRateLimit throttles outgoing requests to rps per second with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(t *Transport) {
		if rps <= 0 {
			t.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// NewTransport creates a Transport for the server described by cfg.
func NewTransport(cfg Config, opts ...Option) *Transport {
	t := &Transport{
		cfg:       cfg,
		baseURI:   cfg.BaseURI(),
		timeout:   DefaultTimeout,
		logger:    slog.New(slog.DiscardHandler),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		t.client = &http.Client{Timeout: t.timeout}
	}
	return t
}

// BaseURI returns the server root, always ending with "/".
func (t *Transport) BaseURI() string { return t.baseURI }

// Config returns the configuration the transport was built with.
func (t *Transport) Config() Config { return t.cfg }

// Request carries the optional parts of a call.
type Request struct {
	// Query is appended to the URI.
	Query url.Values
	// Form is sent as an urlencoded body, or as extra multipart fields when Files is set.
	Form url.Values
	// Files are sent as multipart "file" fields.
	Files []File
	// Accept sets the Accept header when non-empty.
	Accept string
	// NoAuth suppresses basic authentication.
	NoAuth bool
	// Expect lists accepted status codes. Defaults to 200.
	Expect []int
	// NotFound is the error kind raised on 404. Defaults to KindDatasetNotFound.
	NotFound Kind
}

// Get issues a GET request.
func (t *Transport) Get(ctx context.Context, uri string, req Request) (*Response, error) {
	return t.do(ctx, http.MethodGet, uri, req)
}

// Post issues a POST request.
func (t *Transport) Post(ctx context.Context, uri string, req Request) (*Response, error) {
	return t.do(ctx, http.MethodPost, uri, req)
}

// Delete issues a DELETE request.
func (t *Transport) Delete(ctx context.Context, uri string, req Request) (*Response, error) {
	return t.do(ctx, http.MethodDelete, uri, req)
}

func (t *Transport) do(ctx context.Context, method, uri string, req Request) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, wrapError(KindConnection, err)
		}
	}

	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(uri, "?") {
			sep = "&"
		}
		uri += sep + req.Query.Encode()
	}

	body, contentType, cleanup := encodeBody(req)
	defer cleanup()

	httpReq, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, newError(KindArgument, "build %s %s: %v", method, uri, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("X-Request-Id", requestID)
	if !req.NoAuth && t.cfg.HasAuth() {
		httpReq.SetBasicAuth(t.cfg.User, t.cfg.Password)
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.DebugContext(ctx, "fuseki request failed",
			"method", method, "uri", uri, "request_id", requestID, "error", err)
		return nil, wrapError(KindConnection, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(KindConnection, fmt.Errorf("read response body: %w", err))
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Header:     resp.Header,
		Body:       data,
	}
	t.logger.DebugContext(ctx, "fuseki request",
		"method", method, "uri", uri, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		kind := req.NotFound
		if kind == "" {
			kind = KindDatasetNotFound
		}
		return nil, &Error{Kind: kind, Message: out.Reason, StatusCode: resp.StatusCode}
	}
	expect := req.Expect
	if len(expect) == 0 {
		expect = []int{http.StatusOK}
	}
	if !slices.Contains(expect, resp.StatusCode) {
		return nil, &Error{Kind: KindResponse, Message: out.Reason, StatusCode: resp.StatusCode}
	}
	return out, nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// encodeBody returns the request body, its content type and a cleanup func
// that must run once the request has completed.
func encodeBody(req Request) (io.Reader, string, func()) {
	if len(req.Files) == 0 {
		if len(req.Form) == 0 {
			return nil, "", func() {}
		}
		return strings.NewReader(req.Form.Encode()), "application/x-www-form-urlencoded", func() {}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	done := make(chan struct{})
	go func() {
		defer close(done)
		pw.CloseWithError(writeMultipart(mw, req.Form, req.Files))
	}()
	// Closing the read side unblocks the writer if the request was abandoned
	// before the body was consumed; the sources are not touched after cleanup.
	return pr, mw.FormDataContentType(), func() {
		pr.Close()
		<-done
	}
}

func writeMultipart(mw *multipart.Writer, form url.Values, files []File) error {
	for key, values := range form {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				return err
			}
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(f.Name)))
		h.Set("Content-Type", f.MIMEType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
