// Package overpass is the query-and-ingest phase (§4.1): it fetches raw
// tagged objects for a region from an external tagged-object query
// service and decodes them into the model package's types.
package overpass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrQueryTimeout is returned when the query service does not respond
// within the configured timeout.
var ErrQueryTimeout = errors.New("overpass: query timed out")

// ErrQueryHTTPFailure is returned when the query service responds with a
// non-success status after exhausting retries.
var ErrQueryHTTPFailure = errors.New("overpass: query service returned a failure status")

// ClientOptions configures Client's transport and retry behavior.
type ClientOptions struct {
	URL          string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	CacheSize    int // max entries in the response LRU; 0 disables caching
}

// DefaultClientOptions returns sensible defaults for querying a public
// Overpass-API-compatible endpoint.
func DefaultClientOptions() *ClientOptions {
	return &ClientOptions{
		URL:          "https://overpass-api.de/api/interpreter",
		Timeout:      25 * time.Second,
		MaxRetries:   3,
		RetryBackoff: time.Second,
		CacheSize:    256,
	}
}

// Client is the retrying, cached HTTP client used for both the primary
// object query (§4.1) and the track-fetch second query (§4.3).
type Client struct {
	http         *http.Client
	url          string
	apiKey       string
	maxRetries   int
	retryBackoff time.Duration
	cache        *responseCache
}

// NewClient builds a Client from opts, or from DefaultClientOptions when
// opts is nil. The fields of a non-nil opts are used as given: a zero
// CacheSize disables caching and a zero RetryBackoff retries at once.
func NewClient(opts *ClientOptions) *Client {
	if opts == nil {
		opts = DefaultClientOptions()
	}
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
	return &Client{
		http:         &http.Client{Transport: transport, Timeout: opts.Timeout},
		url:          opts.URL,
		apiKey:       opts.APIKey,
		maxRetries:   opts.MaxRetries,
		retryBackoff: opts.RetryBackoff,
		cache:        newResponseCache(opts.CacheSize),
	}
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	if t, ok := c.http.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}

// Query POSTs queryText (with the region's timeout directive already
// prepended by the caller) under the "data" form key and returns the raw
// response body. A cache hit for (cacheKey, queryText) short-circuits the
// round trip entirely.
func (c *Client) Query(ctx context.Context, cacheKey, queryText string) ([]byte, error) {
	if body, ok := c.cache.get(cacheKey, queryText); ok {
		return body, nil
	}

	body, err := c.doWithRetry(ctx, queryText)
	if err != nil {
		return nil, err
	}

	c.cache.set(cacheKey, queryText, body)
	return body, nil
}

func (c *Client) doWithRetry(ctx context.Context, queryText string) ([]byte, error) {
	form := url.Values{"data": {queryText}}
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		attempts++
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(form.Encode()))
		if err != nil {
			return nil, fmt.Errorf("overpass: building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrQueryTimeout, ctx.Err())
			}
			if !isRetryableError(err) || attempt == c.maxRetries {
				break
			}
			if !sleepBackoff(ctx, c.retryBackoff, attempt) {
				return nil, ctx.Err()
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if readErr != nil {
				return nil, fmt.Errorf("overpass: reading response: %w", readErr)
			}
			return body, nil
		}

		lastErr = fmt.Errorf("%w: HTTP %d", ErrQueryHTTPFailure, resp.StatusCode)
		if !isRetryableStatus(resp.StatusCode) || attempt == c.maxRetries {
			break
		}
		if !sleepBackoff(ctx, c.retryBackoff, attempt) {
			return nil, ctx.Err()
		}
	}

	if isRetryableError(lastErr) {
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrQueryTimeout, attempts, lastErr)
	}
	return nil, fmt.Errorf("overpass: query failed after %d attempts: %w", attempts, lastErr)
}

func sleepBackoff(ctx context.Context, base time.Duration, attempt int) bool {
	backoff := base * time.Duration(1<<uint(attempt))
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(backoff):
		return true
	}
}

func isRetryableError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// BuildQuery prepends an Overpass [timeout:N] setting and substitutes the
// region area id into the query text's {{area}} placeholder.
func BuildQuery(queryText string, timeout time.Duration, areaID string) string {
	directive := fmt.Sprintf("[out:json][timeout:%d];\n", int(timeout.Seconds()))
	return directive + strings.ReplaceAll(queryText, "{{area}}", areaID)
}
