// Package transport issues catalog API requests and implements the single
// silent token refresh every authenticated call relies on.
//
// Send follows one fixed protocol:
//
//  1. The request is sent exactly as given.
//  2. On 401 the refresh token is read from the credential store. Without one
//     Send fails with ErrNoRefreshToken. Otherwise a plain refresh call is
//     made; if it is rejected Send fails with ErrRefreshFailed, and if it
//     succeeds the original request is replayed once, unchanged.
//  3. Any other response, including the replay's, is returned as an envelope
//     when its Content-Type is JSON and fails with ErrNotJSON otherwise.
//  4. If the request fails before a response arrives, or the refresh call
//     succeeds with a body that is not a token envelope, Send returns the
//     envelope from envelope.NetworkFailure and a nil error.
//
// The new access token is recorded in the credential store but not added to
// the replayed request's headers. The API gateway sets it as a cookie, which
// the transport's cookie jar attaches.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
)

// DefaultRefreshPath is the endpoint that exchanges a refresh token for a new
// access token.
const DefaultRefreshPath = "/api/user-service/refresh"

// Credentials is the part of the session the transport needs.
type Credentials interface {
	RefreshToken(ctx context.Context) (string, bool, error)
	SetAccessToken(token string)
}

type Transport struct {
	baseURL     *url.URL
	httpClient  *http.Client
	creds       Credentials
	log         logging.Logger
	refreshPath string

	refreshes singleflight.Group
}

type Option func(*Transport)

// WithHTTPClient replaces the default client, which has a cookie jar and no
// timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.httpClient = c }
}

// WithTimeout bounds every HTTP exchange. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) { t.httpClient.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(t *Transport) { t.log = l }
}

func WithRefreshPath(p string) Option {
	return func(t *Transport) { t.refreshPath = p }
}

// New returns a Transport sending requests to baseURL.
func New(baseURL string, creds Credentials, opts ...Option) (*Transport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	t := &Transport{
		baseURL:     u,
		httpClient:  &http.Client{Jar: jar},
		creds:       creds,
		log:         logging.NopLogger{},
		refreshPath: DefaultRefreshPath,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With("component", "transport")
	return t, nil
}

// Send performs an authenticated request and returns the server's envelope.
// Only the status, data_type and data fields of the body are kept; other
// top-level fields are dropped and a JSON body that is not an object fails
// with ErrMalformed. See the package documentation for the exact protocol.
func (t *Transport) Send(ctx context.Context, req Request) (*envelope.Raw, error) {
	res, err := t.withRefresh(ctx, req)
	if err != nil {
		if errors.Is(err, ErrRefreshMalformed) && ctx.Err() == nil {
			t.log.Warn(ctx, "token refresh answered with an unreadable body, returning fallback envelope",
				"method", req.Method, "path", req.Path, "error", err)
			return envelope.NetworkFailure(), nil
		}
		if KindOf(err) == KindNetworkFailure && ctx.Err() == nil {
			t.log.Warn(ctx, "request failed, returning fallback envelope",
				"method", req.Method, "path", req.Path, "error", err)
			return envelope.NetworkFailure(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	if !res.IsJSON() {
		return nil, &Error{Kind: KindUnavailable, Op: req.Method + " " + req.Path, Err: ErrNotJSON}
	}

	env, err := envelope.Decode(res.Body)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Op: req.Method + " " + req.Path, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return env, nil
}

// Fetch runs the same refresh-once protocol as Send but returns the raw
// response, for endpoints that do not answer with JSON.
func (t *Transport) Fetch(ctx context.Context, req Request) (*RawResponse, error) {
	res, err := t.withRefresh(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return res, nil
}

// Do sends req once, without the refresh protocol. Login, register and the
// refresh call itself go through here.
func (t *Transport) Do(ctx context.Context, req Request) (*RawResponse, error) {
	return t.exchange(ctx, req, 1)
}

func (t *Transport) withRefresh(ctx context.Context, req Request) (*RawResponse, error) {
	res, err := t.exchange(ctx, req, 1)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusUnauthorized {
		return res, nil
	}

	if err := t.refresh(ctx); err != nil {
		return nil, err
	}

	// A second 401 is not treated specially.
	return t.exchange(ctx, req, 2)
}

// refresh obtains a new access token. Concurrent callers holding the same
// refresh token share one refresh call; each caller still stops waiting when
// its own context ends.
func (t *Transport) refresh(ctx context.Context) error {
	token, ok, err := t.creds.RefreshToken(ctx)
	if err != nil {
		return &Error{Kind: KindUnavailable, Op: "refresh", Err: err}
	}
	if !ok {
		t.log.Debug(ctx, "401 received and no refresh token stored")
		return &Error{Kind: KindUnauthorized, Op: "refresh", Err: ErrNoRefreshToken}
	}

	ch := t.refreshes.DoChan(token, func() (any, error) {
		return nil, t.requestAccessToken(context.WithoutCancel(ctx), token)
	})

	select {
	case res := <-ch:
		if res.Shared {
			t.log.Debug(ctx, "joined in-flight token refresh")
		}
		return res.Err
	case <-ctx.Done():
		return &Error{Kind: KindNetworkFailure, Op: "refresh", Err: ctx.Err()}
	}
}

func (t *Transport) requestAccessToken(ctx context.Context, refreshToken string) error {
	req, err := NewJSONRequest(http.MethodPost, t.refreshPath, map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		return &Error{Kind: KindMalformed, Op: "refresh", Err: err}
	}

	res, err := t.exchange(ctx, req, 1)
	if err != nil {
		return err
	}
	if !res.OK() {
		t.log.Info(ctx, "token refresh rejected", "status", res.StatusCode)
		return &Error{Kind: KindUnauthorized, Op: "refresh", Err: ErrRefreshFailed}
	}

	env, err := envelope.Decode(res.Body)
	if err != nil {
		return &Error{Kind: KindMalformed, Op: "refresh", Err: fmt.Errorf("%w: %w: %v", ErrRefreshMalformed, ErrMalformed, err)}
	}
	at, err := envelope.Convert[models.AccessToken](env).Value()
	if err != nil {
		return &Error{Kind: KindMalformed, Op: "refresh", Err: fmt.Errorf("%w: %w: %v", ErrRefreshMalformed, ErrMalformed, err)}
	}

	t.creds.SetAccessToken(at.AccessToken)
	t.log.Debug(ctx, "access token refreshed")
	return nil
}

// exchange sends one HTTP request built from req and reads the whole body.
func (t *Transport) exchange(ctx context.Context, req Request, attempt int) (*RawResponse, error) {
	op := req.Method + " " + req.Path

	ref, err := url.Parse(req.Path)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Op: op, Err: err}
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, t.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Op: op, Err: err}
	}
	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}

	started := time.Now()
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.log.Debug(ctx, "request failed", "method", req.Method, "path", req.Path, "attempt", attempt, "error", err)
		return nil, &Error{Kind: KindNetworkFailure, Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetworkFailure, Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	t.log.Debug(ctx, "request done",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"attempt", attempt,
		"elapsed", time.Since(started),
	)

	return &RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get(common.ContentTypeHeader),
		Body:        data,
	}, nil
}

// IsNetworkFailure reports whether err, or env, stands for a request that
// never got a response.
func IsNetworkFailure(env *envelope.Raw, err error) bool {
	if err != nil {
		return errors.Is(err, context.DeadlineExceeded) || KindOf(err) == KindNetworkFailure
	}
	return env != nil && env.Local()
}

// Close drops idle keep-alive connections.
func (t *Transport) Close() {
	t.httpClient.CloseIdleConnections()
}
