// Package client provides the HTTP transport used to query the upstream
// registry: one client with one configurable timeout, DNS caching, and
// optional request pacing.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/dnscache"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds the worst-case latency of a single registry call.
// The call sits on a user-facing admin action, so this is seconds, not the
// platform default.
const DefaultTimeout = 5 * time.Second

const defaultUserAgent = "hiddengems/1.0"

// Getter is the read-only query surface consumed by the upstream adapter.
type Getter interface {
	GetJSON(ctx context.Context, url string, v any) error
}

// RateLimiter controls request pacing.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Client issues read-only GET requests against the upstream registry.
// It must not mutate shared state beyond its own connection pool.
type Client struct {
	http      *http.Client
	userAgent string
	limiter   RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithRateLimit caps outbound requests per second. rps <= 0 removes the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
		} else {
			c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
		}
	}
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	// DNS cache with 5 minute refresh interval
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	c := &Client{
		http: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					host, port, err := net.SplitHostPort(addr)
					if err != nil {
						return nil, err
					}
					ips, err := resolver.LookupHost(ctx, host)
					if err != nil {
						return nil, err
					}
					for _, ip := range ips {
						conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
						if err == nil {
							return conn, nil
						}
					}
					return nil, fmt.Errorf("failed to dial any resolved IP")
				},
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClient returns a client with the default timeout and no pacing.
func DefaultClient() *Client {
	return NewClient()
}

// GetJSON issues a GET request and decodes the JSON response into v.
// The upstream API accepts no other verbs. Failures always carry one of
// the package sentinel errors or an *HTTPError; nothing panics past this
// boundary and there are no automatic retries.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("fetching %s: %w", rawURL, ErrTimeout)
		}
		return fmt.Errorf("fetching %s: %v: %w", rawURL, err, ErrUpstreamDown)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("fetching %s: %w", rawURL, ErrRateLimited)
	case resp.StatusCode >= 500:
		return fmt.Errorf("status %d from %s: %w", resp.StatusCode, rawURL, ErrUpstreamDown)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &HTTPError{StatusCode: resp.StatusCode, URL: rawURL, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %v: %w", rawURL, err, ErrDecode)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
