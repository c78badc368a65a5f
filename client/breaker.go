package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// BreakerClient wraps a Client with per-host circuit breakers so a dead
// upstream fails fast instead of burning the request timeout on every call.
type BreakerClient struct {
	client   *Client
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

// NewBreakerClient creates a circuit breaker wrapper for a client.
func NewBreakerClient(c *Client) *BreakerClient {
	return &BreakerClient{
		client:   c,
		breakers: make(map[string]*circuit.Breaker),
	}
}

// getBreaker returns or creates a circuit breaker for the given host.
func (b *BreakerClient) getBreaker(host string) *circuit.Breaker {
	b.mu.RLock()
	breaker, exists := b.breakers[host]
	b.mu.RUnlock()

	if exists {
		return breaker
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := b.breakers[host]; exists {
		return breaker
	}

	// Trips after 5 consecutive failures, resets with exponential backoff
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	opts := &circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	}
	breaker = circuit.NewBreakerWithOptions(opts)

	b.breakers[host] = breaker
	return breaker
}

// GetJSON issues the request through the breaker guarding the URL's host.
func (b *BreakerClient) GetJSON(ctx context.Context, rawURL string, v any) error {
	host := extractHost(rawURL)
	breaker := b.getBreaker(host)

	if !breaker.Ready() {
		return fmt.Errorf("circuit breaker open for %s: %w", host, ErrUpstreamDown)
	}

	return breaker.Call(func() error {
		return b.client.GetJSON(ctx, rawURL, v)
	}, 0)
}

// States returns the current state of all tracked breakers, for health
// checks.
func (b *BreakerClient) States() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	states := make(map[string]string, len(b.breakers))
	for host, breaker := range b.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

// extractHost extracts the host from a URL for breaker grouping.
func extractHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}
