// Package hiddengems discovers under-the-radar packages in a registry
// catalog: packages with high quality scores but low install counts.
//
// The pipeline aggregates records from several browse strategies, caches
// the pool for a short TTL, then filters, ranks, and paginates per query.
// Each surviving record carries a presentation tier describing how hidden
// it is.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/iconick/hiddengems"
//	)
//
//	svc := hiddengems.NewService(hiddengems.NewWPOrgRegistry("", nil), nil)
//	res, err := svc.Query(context.Background(), hiddengems.Request{
//		MaxPopularity:   10000,
//		MinQualityStars: 4,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range res.Items {
//		fmt.Println(item.Identifier, item.Tier)
//	}
package hiddengems

import (
	"time"

	"github.com/iconick/hiddengems/client"
	"github.com/iconick/hiddengems/discover"
	"github.com/iconick/hiddengems/internal/core"
	"github.com/iconick/hiddengems/internal/gemcache"
	"github.com/iconick/hiddengems/internal/sieve"
	"github.com/iconick/hiddengems/internal/tier"
	"github.com/iconick/hiddengems/internal/wporg"
)

// Re-export types from internal/core
type (
	// Record is one package as seen by the pipeline.
	Record = core.Record

	// Filters are the caller-supplied narrowing criteria.
	Filters = core.Filters

	// QueryRequest is one upstream catalog query.
	QueryRequest = core.QueryRequest

	// PageResult is one page of filtered, ranked records.
	PageResult = core.PageResult

	// Strategy selects an upstream browse mode.
	Strategy = core.Strategy

	// SortKey selects the ranking order.
	SortKey = core.SortKey

	// Mode selects between bulk and server-side discovery.
	Mode = core.Mode

	// Failure is a classified upstream or authorization failure.
	Failure = core.Failure

	// FailureKind names a failure class.
	FailureKind = core.FailureKind
)

// Re-export types from discover
type (
	// Registry issues read-only queries against an upstream catalog.
	Registry = discover.Registry

	// Request is one discovery query.
	Request = discover.Request

	// Result is one page of annotated discovery output.
	Result = discover.Result

	// Item is a record with its presentation tier.
	Item = discover.Item

	// Options tune the discovery pipeline.
	Options = discover.Options

	// Service runs discovery queries.
	Service = discover.Service
)

// Cache is the short-TTL store shared by bulk-mode queries.
type Cache = gemcache.Cache

// Re-export classifier types
type (
	// Tier labels how hidden a record is.
	Tier = tier.Tier

	// Thresholds configure the tier classifier.
	Thresholds = tier.Thresholds
)

// Re-export constants
const (
	Newest          = core.Newest
	RecentlyUpdated = core.RecentlyUpdated
	Popular         = core.Popular

	SortNewest          = core.SortNewest
	SortHighestRated    = core.SortHighestRated
	SortRecentlyUpdated = core.SortRecentlyUpdated

	ModeBulk       = core.ModeBulk
	ModeServerSide = core.ModeServerSide

	UpstreamTimeout     = core.UpstreamTimeout
	UpstreamUnavailable = core.UpstreamUnavailable
	UpstreamMalformed   = core.UpstreamMalformed
	PermissionDenied    = core.PermissionDenied

	TierSuperHidden = tier.SuperHidden
	TierHidden      = tier.Hidden
	TierEmerging    = tier.Emerging

	DefaultPageSize = core.DefaultPageSize
)

// AsFailure unwraps err into a *Failure when it carries one.
func AsFailure(err error) (*Failure, bool) {
	return core.AsFailure(err)
}

// Match reports whether a record passes the filters.
func Match(rec Record, f Filters) bool {
	return sieve.Match(rec, f)
}

// Filter returns the records passing the filters, in input order.
func Filter(records []Record, f Filters) []Record {
	return sieve.Filter(records, f)
}

// Sort returns a copy of records ranked by key. Ties keep input order.
func Sort(records []Record, key SortKey) []Record {
	return sieve.Sort(records, key)
}

// Paginate slices records into one page of pageSize items.
func Paginate(records []Record, page, pageSize int) PageResult {
	return sieve.Paginate(records, page, pageSize)
}

// Classify returns the tier for a record under the given thresholds.
func Classify(rec Record, t Thresholds) Tier {
	return tier.Classify(rec, t)
}

// DefaultThresholds returns the stock classifier thresholds.
func DefaultThresholds() Thresholds {
	return tier.DefaultThresholds()
}

// NewWPOrgRegistry returns a registry backed by the WordPress.org plugin
// API. If baseURL is empty the public endpoint is used; if c is nil a
// breaker-wrapped default client is used.
func NewWPOrgRegistry(baseURL string, c client.Getter) Registry {
	if c == nil {
		c = client.NewBreakerClient(client.DefaultClient())
	}
	return wporg.New(baseURL, c)
}

// NewService creates a discovery Service with a fresh cache and default
// options. For full control construct discover.New directly.
func NewService(registry Registry, opts *Options) *Service {
	var o Options
	if opts != nil {
		o = *opts
	}
	return discover.New(registry, NewCache(0, 0), o, nil, nil)
}

// NewCache creates a result cache. size and ttl fall back to defaults
// when non-positive.
func NewCache(size int, ttl time.Duration) *Cache {
	return gemcache.New(size, ttl)
}
