// Package discover composes the discovery pipeline: aggregation, caching,
// filtering, ranking, pagination, and tier annotation.
//
// Two operating modes exist. Bulk mode aggregates a large pool from
// several browse strategies, caches it, and refines the cached pool per
// request. Server-side mode issues one smaller targeted query per request
// and refines that window, bypassing the cache. Both modes share the same
// filter, sort, and paginate functions, so their semantics cannot drift
// apart.
package discover

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iconick/hiddengems/internal/core"
	"github.com/iconick/hiddengems/internal/gemcache"
	"github.com/iconick/hiddengems/internal/metrics"
	"github.com/iconick/hiddengems/internal/pool"
	"github.com/iconick/hiddengems/internal/sieve"
	"github.com/iconick/hiddengems/internal/tier"
)

const (
	defaultBulkPerPage  = 500
	defaultCapacity     = 2000
	defaultWindowFactor = 5

	// maxServerSideWindow bounds the per-request overfetch.
	maxServerSideWindow = 200
)

// Registry issues read-only queries against the upstream catalog.
type Registry interface {
	Query(ctx context.Context, q core.QueryRequest) ([]core.Record, error)
}

// Request is one discovery query from the render boundary.
type Request struct {
	SearchText      string       `json:"search" form:"search"`
	MaxPopularity   int          `json:"max_installs" form:"max_installs"`
	MinQualityStars int          `json:"min_quality" form:"min_quality"`
	SortKey         core.SortKey `json:"sort" form:"sort"`
	Page            int          `json:"page" form:"page"`
	PageSize        int          `json:"per_page" form:"per_page"`
	Mode            core.Mode    `json:"mode" form:"mode"`
}

// Item is a record annotated with its presentation tier.
type Item struct {
	core.Record
	Tier tier.Tier `json:"tier,omitempty"`
}

// Result is one page of annotated, ranked records. Zero items with a nil
// error means nothing matched the filters, which is distinct from an
// upstream failure.
type Result struct {
	Items      []Item `json:"items"`
	TotalCount int    `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Cached     bool   `json:"cached"`
}

// Options tune the pipeline. Zero values fall back to the defaults the
// admin surface shipped with.
type Options struct {
	// Strategies are the browse modes aggregated into the bulk pool.
	Strategies []core.Strategy
	// BulkPerPage is the upstream page size requested per strategy.
	BulkPerPage int
	// Capacity caps the unique records kept in the bulk pool.
	Capacity int
	// WindowFactor is the server-side overfetch multiplier: the upstream
	// window is PageSize*WindowFactor records so filtering still fills a
	// page.
	WindowFactor int
	// Thresholds feed the gem classifier.
	Thresholds tier.Thresholds
}

// Service runs discovery queries against one upstream registry.
type Service struct {
	registry   Registry
	aggregator *pool.Aggregator
	cache      *gemcache.Cache
	opts       Options
	log        *zap.Logger
	metrics    *metrics.Metrics
}

// New creates a Service. cache is the only shared mutable dependency;
// log and m may be nil.
func New(registry Registry, cache *gemcache.Cache, opts Options, log *zap.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.Strategies) == 0 {
		opts.Strategies = []core.Strategy{core.Newest, core.RecentlyUpdated, core.Popular}
	}
	if opts.BulkPerPage <= 0 {
		opts.BulkPerPage = defaultBulkPerPage
	}
	if opts.Capacity <= 0 {
		opts.Capacity = defaultCapacity
	}
	if opts.WindowFactor <= 0 {
		opts.WindowFactor = defaultWindowFactor
	}
	if opts.Thresholds == (tier.Thresholds{}) {
		opts.Thresholds = tier.DefaultThresholds()
	}
	return &Service{
		registry:   registry,
		aggregator: pool.New(registry, log),
		cache:      cache,
		opts:       opts,
		log:        log,
		metrics:    m,
	}
}

// Query runs one discovery request end to end. Every code path terminates
// in success, empty-success, or a typed *core.Failure within the client
// timeout envelope.
func (s *Service) Query(ctx context.Context, req Request) (*Result, error) {
	req = normalize(req)

	var (
		res *Result
		err error
	)
	switch req.Mode {
	case core.ModeServerSide:
		res, err = s.queryServerSide(ctx, req)
	default:
		res, err = s.queryBulk(ctx, req)
	}
	s.metrics.ObserveQuery(req.Mode, err)
	return res, err
}

func normalize(req Request) Request {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = core.DefaultPageSize
	}
	if req.SortKey == "" {
		req.SortKey = core.SortNewest
	}
	if req.Mode == "" {
		req.Mode = core.ModeBulk
	}
	return req
}

func (s *Service) queryBulk(ctx context.Context, req Request) (*Result, error) {
	records, cached := s.cache.Get(gemcache.BulkPoolKey)
	if cached {
		s.metrics.CacheHit()
	} else {
		s.metrics.CacheMiss()

		start := time.Now()
		var err error
		records, err = s.aggregator.Aggregate(ctx, s.opts.Strategies, s.opts.BulkPerPage, s.opts.Capacity)
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveAggregate(time.Since(start), len(records))
		s.log.Info("bulk pool refreshed",
			zap.Int("records", len(records)),
			zap.Duration("took", time.Since(start)))

		s.cache.Put(gemcache.BulkPoolKey, records)
	}

	page := s.refine(records, req)
	return s.annotate(page, cached), nil
}

func (s *Service) queryServerSide(ctx context.Context, req Request) (*Result, error) {
	window := req.PageSize * s.opts.WindowFactor
	if window > maxServerSideWindow {
		window = maxServerSideWindow
	}
	q := core.QueryRequest{
		Browse:  browseFor(req.SortKey),
		PerPage: window,
		Page:    req.Page,
	}
	if req.SearchText != "" {
		q.Browse = core.Search
		q.Search = req.SearchText
	}

	records, err := s.registry.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	// The upstream query already positioned the window at the requested
	// page, so the slice starts at the window head. Page metadata covers
	// the filtered window.
	page := s.refine(records, Request{
		SearchText:      req.SearchText,
		MaxPopularity:   req.MaxPopularity,
		MinQualityStars: req.MinQualityStars,
		SortKey:         req.SortKey,
		Page:            1,
		PageSize:        req.PageSize,
	})
	page.Page = req.Page
	return s.annotate(page, false), nil
}

// refine applies the shared filter, sort, and paginate steps. Both modes
// go through here so identical filter values behave identically.
func (s *Service) refine(records []core.Record, req Request) core.PageResult {
	filtered := sieve.Filter(records, core.Filters{
		SearchText:      req.SearchText,
		MaxPopularity:   req.MaxPopularity,
		MinQualityStars: req.MinQualityStars,
	})
	ranked := sieve.Sort(filtered, req.SortKey)
	return sieve.Paginate(ranked, req.Page, req.PageSize)
}

func (s *Service) annotate(page core.PageResult, cached bool) *Result {
	items := make([]Item, len(page.Items))
	for i, rec := range page.Items {
		items[i] = Item{Record: rec, Tier: tier.Classify(rec, s.opts.Thresholds)}
	}
	return &Result{
		Items:      items,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		Cached:     cached,
	}
}

// browseFor picks the upstream browse mode that best pre-sorts for the
// requested ordering.
func browseFor(key core.SortKey) core.Strategy {
	switch key {
	case core.SortHighestRated:
		return core.Popular
	case core.SortRecentlyUpdated:
		return core.RecentlyUpdated
	default:
		return core.Newest
	}
}
