// Package api implements the HTTP gateway every remote operation funnels
// through. It hides two cross-cutting behaviors from callers: bearer-token
// attachment (read fresh from the session at send time, never cached at
// construction) and single-flight access-token renewal on authorization
// failure with replay of the failed request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"beacon/config"
	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/errors"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// TokenSource is the session store's face toward the transport. The
// transport never holds tokens itself; it asks on every request.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(accessToken string)
	Clear()
}

// Client is the shared HTTP gateway. A single instance serves every
// operation wrapper; its refresh state machine guarantees at most one
// token-refresh call in flight regardless of how many concurrent requests
// fail with 401/403.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	tokens        TokenSource
	logger        *slog.Logger
	userAgent     string
	refreshLeeway leewayFunc
	refreshGroup  singleflight.Group
	onAuthFailure atomic.Pointer[func()]
}

type leewayFunc func(accessToken string) bool

// New creates the gateway client from configuration.
func New(cfg *config.Config, tokens TokenSource, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.API.BaseURL, "/") + "/")
	if err != nil {
		return nil, errors.Wrap(err, "parse api base url")
	}

	return &Client{
		baseURL:       base,
		httpClient:    &http.Client{Timeout: cfg.API.Timeout},
		tokens:        tokens,
		logger:        logger,
		userAgent:     cfg.API.UserAgent,
		refreshLeeway: expiresWithin(cfg.Session.RefreshLeeway),
	}, nil
}

// SetAuthFailureHandler registers the hook fired on unrecoverable auth
// failure, after the session has been cleared. The UI uses it to route the
// client back to the login entry point. Safe to call while requests are in
// flight; in-flight failures see either the old handler or the new one.
func (c *Client) SetAuthFailureHandler(fn func()) {
	c.onAuthFailure.Store(&fn)
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	public bool
	query  url.Values
}

// Public marks a request as anonymous: no bearer header is attached and a
// 401/403 response is returned as-is instead of triggering a refresh.
func Public() RequestOption {
	return func(o *requestOptions) { o.public = true }
}

// WithQuery appends query parameters to the request URL.
func WithQuery(values url.Values) RequestOption {
	return func(o *requestOptions) { o.query = values }
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	payload, err := jsonPayload(body)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, path, payload, out, opts...)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	payload, err := jsonPayload(body)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPut, path, payload, out, opts...)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	payload, err := jsonPayload(body)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPatch, path, payload, out, opts...)
}

// Delete issues a DELETE request. Most delete endpoints return no body.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// FilePart is a named file attached to a multipart request.
type FilePart struct {
	FileName string
	Content  []byte
}

// PutMultipart issues a PUT with multipart/form-data encoding, used by the
// profile-update endpoint which accepts a picture upload alongside fields.
func (c *Client) PutMultipart(ctx context.Context, path string, fields map[string]string, files map[string]FilePart, out any, opts ...RequestOption) error {
	payload, err := multipartPayload(fields, files)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPut, path, payload, out, opts...)
}

// payload is a replayable request body: the bytes are captured once and a
// fresh reader is produced per attempt, so a request retried after a token
// refresh resends the identical body.
type payload struct {
	contentType string
	raw         []byte
}

func (p *payload) reader() io.Reader {
	if p == nil || len(p.raw) == 0 {
		return nil
	}

	return bytes.NewReader(p.raw)
}

func jsonPayload(body any) (*payload, error) {
	if body == nil {
		return nil, nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "encode request body")
	}

	return &payload{contentType: "application/json", raw: raw}, nil
}

func multipartPayload(fields map[string]string, files map[string]FilePart) (*payload, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, errors.Wrap(err, "write multipart field")
		}
	}
	for name, part := range files {
		fw, err := writer.CreateFormFile(name, part.FileName)
		if err != nil {
			return nil, errors.Wrap(err, "create multipart file")
		}
		if _, err := fw.Write(part.Content); err != nil {
			return nil, errors.Wrap(err, "write multipart file")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize multipart body")
	}

	return &payload{contentType: writer.FormDataContentType(), raw: buf.Bytes()}, nil
}

// do sends the request once, and on an authorization failure runs the
// refresh state machine and replays exactly once. A replayed request that
// fails again with 401/403 propagates the error as-is; there is no second
// retry.
func (c *Client) do(ctx context.Context, method, path string, body *payload, out any, opts ...RequestOption) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	if !ro.public {
		c.refreshAhead(ctx)
	}

	err := c.send(ctx, method, path, body, out, ro)
	if err == nil || ro.public {
		return err
	}

	apiErr, ok := domainerrors.AsAPIError(err)
	if !ok || !apiErr.IsAuthFailure() {
		return err
	}

	if _, rerr := c.refresh(ctx); rerr != nil {
		return rerr
	}
	c.logger.Debug("Replaying request after token refresh",
		slog.String("method", method), slog.String("path", path))

	return c.send(ctx, method, path, body, out, ro)
}

// send performs a single HTTP round trip. The bearer token is read from the
// token source here, at send time, so a replay automatically picks up the
// renewed token.
func (c *Client) send(ctx context.Context, method, path string, body *payload, out any, ro requestOptions) error {
	target, err := c.baseURL.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return errors.Wrapf(err, "resolve path %s", path)
	}
	if len(ro.query) > 0 {
		target.RawQuery = ro.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body.reader())
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	if !ro.public {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode response body")
	}

	return nil
}

// parseAPIError turns an error response body into an APIError. The server
// reports either a single "detail" string or a map of field name to a list
// of messages; both shapes are captured, and an unparseable body is kept raw.
func parseAPIError(status int, raw []byte) *domainerrors.APIError {
	apiErr := &domainerrors.APIError{StatusCode: status, Raw: string(raw)}
	if len(raw) == 0 {
		return apiErr
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail != "" {
		apiErr.Detail = detail.Detail

		return apiErr
	}

	var fieldMap map[string]any
	if err := json.Unmarshal(raw, &fieldMap); err != nil {
		return apiErr
	}

	fields := make(map[string][]string, len(fieldMap))
	for key, value := range fieldMap {
		switch v := value.(type) {
		case string:
			fields[key] = []string{v}
		case []any:
			var msgs []string
			for _, item := range v {
				if msg, ok := item.(string); ok {
					msgs = append(msgs, msg)
				}
			}
			if len(msgs) > 0 {
				fields[key] = msgs
			}
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}

	return apiErr
}
