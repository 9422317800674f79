package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BearerSource supplies the bearer credential for authenticated
// requests. An empty token means logged out; the request is then sent
// without an Authorization header.
type BearerSource interface {
	Token() string
}

// Bearer is a concurrency-safe credential cell. The session store
// writes it, the client reads it.
type Bearer struct {
	mu    sync.RWMutex
	token string
}

func (b *Bearer) Set(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

func (b *Bearer) Token() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

// Client is the typed REST client for the storefront backend. All
// calls are stateless request/response wrappers; failures surface as
// *FetchError (or *AuthError for the auth endpoints) and are never
// retried automatically.
type Client struct {
	base    url.URL
	http    httpClient
	breaker *gobreaker.CircuitBreaker[*http.Response]
	bearer  BearerSource
	log     *zap.Logger

	// Collapses concurrent quantity lookups for the same product.
	quantities singleflight.Group
}

// NewHTTPClient returns the http.Client the storefront uses by
// default, with an instrumented transport.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}

// NewClient creates a backend client rooted at base.
func NewClient(base url.URL, client httpClient, bearer BearerSource, log *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "storefront-api",
		Timeout: 30 * time.Second,
	})

	return &Client{
		base:    base,
		http:    client,
		breaker: breaker,
		bearer:  bearer,
		log:     log,
	}
}

// send issues one request and decodes the JSON response into out when
// out is non-nil. authed attaches the bearer token when one is held.
func (c *Client) send(ctx context.Context, method string, u *url.URL, body any, authed bool, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if authed {
		if token := c.bearer.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("url", u.String()),
			zap.Error(err))
		return &FetchError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newFetchError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{
			Status:  resp.StatusCode,
			Message: "malformed response body",
			Err:     err,
		}
	}
	return nil
}
