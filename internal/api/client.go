// Package api holds the single configured HTTP pipeline every backend call
// goes through: bearer and CSRF attachment on the way out, the
// 401-refresh-and-retry state machine on the way back.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"uniportal.org/internal/ids"
	"uniportal.org/internal/obs"
	"uniportal.org/internal/tokens"
)

const defaultTimeout = 10 * time.Second

// Client is the shared request pipeline. Construct one per backend and reuse
// it; it is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	store   tokens.Store
	csrf    func() string
	limiter *rate.Limiter
	lang    string
	log     *zap.Logger

	// onSessionExpired fires after a refresh attempt fails and both tokens
	// have been cleared, the native equivalent of forcing navigation to the
	// login entry point.
	onSessionExpired func()
}

// Option configures a Client.
type Option func(*Client) error

// WithTokenStore sets the credential store consulted for bearer attachment
// and cleared on unrecoverable 401s.
func WithTokenStore(store tokens.Store) Option {
	return func(c *Client) error {
		if store != nil {
			c.store = store
		}
		return nil
	}
}

// WithCSRFToken attaches a fixed CSRF token to every request. Empty disables
// the header, mirroring a page without the csrf-token meta tag.
func WithCSRFToken(token string) Option {
	return func(c *Client) error {
		if token != "" {
			c.csrf = func() string { return token }
		}
		return nil
	}
}

// WithCSRFSource attaches the token returned by fn, evaluated per request.
func WithCSRFSource(fn func() string) Option {
	return func(c *Client) error {
		if fn != nil {
			c.csrf = fn
		}
		return nil
	}
}

// WithTimeout overrides the fixed request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d > 0 {
			c.httpc.Timeout = d
		}
		return nil
	}
}

// WithLanguage sets the Accept-Language preference sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) error {
		c.lang = lang
		return nil
	}
}

// WithRateLimit bounds outbound request rate with a token bucket.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) error {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
		return nil
	}
}

// WithSessionExpiredHandler registers the hook fired when a 401 could not be
// recovered by refresh.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) error {
		c.onSessionExpired = fn
		return nil
	}
}

// WithLogger overrides the shared logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}

// New constructs the client with a cookie jar (credentials ride on every
// request, the equivalent of withCredentials) and the fixed default timeout.
func New(rawBaseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(rawBaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base url %q must be absolute", rawBaseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}

	obs.Init()
	c := &Client{
		baseURL: base,
		httpc:   &http.Client{Timeout: defaultTimeout, Jar: jar},
		store:   tokens.NewMemStore(),
		log:     obs.Logger(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() *url.URL { return c.baseURL }

// Jar exposes the cookie jar so a JarStore can share it.
func (c *Client) Jar() http.CookieJar { return c.httpc.Jar }

// TokenStore returns the credential store the pipeline consults.
func (c *Client) TokenStore() tokens.Store { return c.store }

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// GetBytes fetches a raw payload (file downloads) through the same pipeline.
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.exchange(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// UploadFile posts content as a multipart form file through the same
// pipeline, so uploads get the auth and retry semantics of every other call.
func (c *Client) UploadFile(ctx context.Context, path, field, filename string, content []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("api: build multipart body: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return fmt.Errorf("api: build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("api: build multipart body: %w", err)
	}

	resp, err := c.exchange(ctx, http.MethodPost, path, buf.Bytes(), w.FormDataContentType())
	if err != nil {
		return err
	}
	if out != nil && len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("api: decode response for POST %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
	}
	resp, err := c.exchange(ctx, method, path, payload, "")
	if err != nil {
		return err
	}
	if out != nil && len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("api: decode response for %s %s: %w", method, path, err)
		}
	}
	return nil
}

// exchange runs one logical request through the response state machine.
// The retry marker is a local of this call, so concurrent requests hitting
// 401 at the same time cannot interfere with each other's retry budget.
func (c *Client) exchange(ctx context.Context, method, path string, payload []byte, contentType string) (*response, error) {
	resp, err := c.send(ctx, method, path, payload, contentType)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusUnauthorized {
		// Exactly one refresh-and-retry. The refresh itself goes through
		// send directly and can never re-enter this path.
		if rerr := c.refreshOnce(ctx); rerr != nil {
			tokens.Clear(c.store)
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
			return nil, c.classify(method, path, resp)
		}
		resp, err = c.send(ctx, method, path, payload, contentType)
		if err != nil {
			return nil, err
		}
		// A second 401 falls through to classify below: the retry budget for
		// this request is spent.
	}

	if resp.status < 200 || resp.status >= 300 {
		return nil, c.classify(method, path, resp)
	}
	return resp, nil
}

// refreshOnce exchanges the refresh token for fresh credentials. Exposed to
// the session manager through Auth().Refresh.
func (c *Client) refreshOnce(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh", nil, "")
	if err != nil {
		obs.ObserveRefresh(false)
		return err
	}
	if resp.status < 200 || resp.status >= 300 {
		obs.ObserveRefresh(false)
		return &APIError{Status: resp.status, Message: messageFromBody(resp.body)}
	}
	obs.ObserveRefresh(true)
	return nil
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// send performs a single attempt: interceptors, wire call, cookie sync.
// An empty contentType means JSON.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, contentType string) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("api: rate limiter: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-ID", ids.New())
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}
	if token, ok := c.store.Get(tokens.AccessTokenName); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.csrf != nil {
		if token := c.csrf(); token != "" {
			req.Header.Set("X-CSRF-TOKEN", token)
		}
	}

	obs.IncInFlight()
	start := time.Now()
	httpResp, err := c.httpc.Do(req)
	obs.DecInFlight()
	if err != nil {
		obs.ObserveRequest(method, path, 0, start)
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		obs.ObserveRequest(method, path, 0, start)
		return nil, fmt.Errorf("api: read response for %s %s: %w", method, path, err)
	}
	obs.ObserveRequest(method, path, httpResp.StatusCode, start)

	c.syncCookies()
	return &response{status: httpResp.StatusCode, header: httpResp.Header, body: data}, nil
}

// syncCookies copies credential cookies the backend set into the token
// store, so a persistent store survives process restarts even though the
// server only ever speaks Set-Cookie.
func (c *Client) syncCookies() {
	if c.httpc.Jar == nil {
		return
	}
	for _, cookie := range c.httpc.Jar.Cookies(c.baseURL) {
		switch cookie.Name {
		case tokens.AccessTokenName, tokens.RefreshTokenName:
			if cookie.Value == "" {
				continue
			}
			if current, ok := c.store.Get(cookie.Name); !ok || current != cookie.Value {
				c.store.Set(cookie.Name, cookie.Value)
			}
		}
	}
}

func (c *Client) classify(method, path string, resp *response) error {
	apiErr := &APIError{Status: resp.status, Message: messageFromBody(resp.body)}
	switch resp.status {
	case http.StatusForbidden:
		c.log.Warn("permission denied",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("error", apiErr.Message))
	case http.StatusTooManyRequests:
		// No backoff at this layer; callers decide how to react.
		c.log.Warn("rate limit exceeded",
			zap.String("method", method),
			zap.String("path", path))
	}
	return apiErr
}
