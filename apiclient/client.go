package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/stocklens/go-inventory-client/credstore"
)

// refreshPath is the token-refresh endpoint, relative to the base URL.
const refreshPath = "/token/refresh/"

// Request describes one API call. Method defaults to GET; Path is relative
// to the client's base URL; Body, Query and Header are optional.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Client is the shared request primitive. It builds URLs against a
// configured base, attaches bearer credentials read from the store, encodes
// bodies as JSON and interprets status codes. A 401 triggers at most one
// refresh-and-retry; an irrecoverable 401 clears the store and fires the
// session-expired handler.
//
// The client only ever reads credentials; persisting a refreshed access
// token is its single write, and the session manager remains the owner of
// the pair.
type Client struct {
	baseURL   string
	http      *http.Client
	creds     credstore.Repo
	log       zerolog.Logger
	onExpired func()
	nowTime   func() time.Time
}

// Option modifies a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Transport-level
// timeouts live there, not in this layer.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithLogger attaches a logger; requests are logged at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithSessionExpiredHandler registers the teardown signal fired after an
// irrecoverable 401 (the "go to login boundary" side effect).
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) {
		c.onExpired = fn
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Client) {
		c.nowTime = nowFunc
	}
}

// New creates a Client for the API rooted at baseURL, reading credentials
// from creds.
func New(baseURL string, creds credstore.Repo, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[apiclient.New] baseURL is required")
	}
	if creds == nil {
		return nil, errors.New("[apiclient.New] credential repo is required")
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		creds:   creds,
		log:     zerolog.Nop(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// Do executes req and decodes a 2xx JSON body into out (out may be nil; 204
// and empty bodies decode nothing). The 401 path runs the explicit
// send → refresh → retry sequence: straight-line code, so a second refresh
// cannot happen.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	creds, err := c.creds.Credentials()
	if err != nil {
		return errors.Wrap(err, "[Client.Do] read credentials")
	}

	requestID := uuid.New().String()

	// Send.
	status, body, err := c.send(ctx, req, creds, requestID)
	if err != nil {
		return err
	}
	if status != http.StatusUnauthorized {
		return c.finish(status, body, out)
	}

	// Refresh. Tears down and fails with ErrSessionExpired when no usable
	// refresh token exists.
	refreshed, err := c.refresh(ctx, creds)
	if err != nil {
		return err
	}

	// Retry, exactly once. A second 401 is terminal.
	status, body, err = c.send(ctx, req, refreshed, requestID)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		c.teardown("retry rejected")
		return ErrSessionExpired
	}
	return c.finish(status, body, out)
}

// DoOnce executes req as a single shot, skipping the refresh-and-retry
// handling and the teardown side effects. Authentication endpoints use this:
// a rejected login is a plain failure, not an expired session.
func (c *Client) DoOnce(ctx context.Context, req Request, out any) error {
	creds, err := c.creds.Credentials()
	if err != nil {
		return errors.Wrap(err, "[Client.DoOnce] read credentials")
	}

	status, body, err := c.send(ctx, req, creds, uuid.New().String())
	if err != nil {
		return err
	}
	return c.finish(status, body, out)
}

// send performs a single HTTP round trip and reads the whole response body.
func (c *Client) send(ctx context.Context, req Request, creds *credstore.Credentials, requestID string) (int, []byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		// url.Values.Encode sorts by key, keeping URLs stable.
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return 0, nil, errors.Wrap(err, "[Client.send] marshal body")
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "[Client.send] build request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if creds.Valid() {
		httpReq.Header.Set("Authorization", "Bearer "+creds.Access)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Set(key, value)
		}
	}

	started := c.nowTime()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "[Client.send] %s %s", method, req.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "[Client.send] read body")
	}

	c.log.Debug().
		Str("method", method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", c.nowTime().Sub(started)).
		Msg("api request")

	return resp.StatusCode, body, nil
}

// refresh exchanges the refresh token for a new access token and persists
// the updated pair (refresh token unchanged). Any failure is terminal for
// the session.
func (c *Client) refresh(ctx context.Context, creds *credstore.Credentials) (*credstore.Credentials, error) {
	if !creds.Valid() {
		c.teardown("unauthorized without refresh token")
		return nil, ErrSessionExpired
	}

	payload := map[string]string{"refresh": creds.Refresh}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.refresh] marshal payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "[Client.refresh] build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.teardown("refresh transport failure")
		return nil, ErrSessionExpired
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.teardown("refresh rejected")
		return nil, ErrSessionExpired
	}

	var refreshResp struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &refreshResp); err != nil || refreshResp.Access == "" {
		c.teardown("refresh response unreadable")
		return nil, ErrSessionExpired
	}

	updated := creds.WithAccess(refreshResp.Access)
	if err := c.creds.SetCredentials(&updated); err != nil {
		return nil, errors.Wrap(err, "[Client.refresh] persist credentials")
	}

	c.log.Debug().Msg("access token refreshed")
	return &updated, nil
}

// teardown clears the persisted session and signals the login boundary.
func (c *Client) teardown(reason string) {
	c.log.Warn().Str("reason", reason).Msg("session torn down")
	if err := c.creds.Clear(); err != nil {
		c.log.Error().Err(err).Msg("clearing credentials failed")
	}
	if c.onExpired != nil {
		c.onExpired()
	}
}

// finish interprets a terminal status and decodes the body.
func (c *Client) finish(status int, body []byte, out any) error {
	if status < 200 || status >= 300 {
		return newRequestError(status, body)
	}
	if status == http.StatusNoContent || len(body) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "[Client.finish] decode response")
	}
	return nil
}
