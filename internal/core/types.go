// Package core provides the shared types and failure taxonomy for the
// discovery pipeline.
package core

import "time"

// DefaultPageSize is the page size the admin surface renders with.
const DefaultPageSize = 24

// Strategy is one upstream browse mode used to source a subset of the pool.
type Strategy string

const (
	Newest          Strategy = "new"
	RecentlyUpdated Strategy = "updated"
	Popular         Strategy = "popular"
	Search          Strategy = "search"
)

// SortKey selects the ordering applied to a filtered result set.
type SortKey string

const (
	SortNewest          SortKey = "newest"
	SortHighestRated    SortKey = "rating"
	SortRecentlyUpdated SortKey = "updated"
)

// Mode selects how a discovery query is executed.
type Mode string

const (
	// ModeBulk aggregates a large pool once, caches it, and filters,
	// sorts, and paginates against the cached pool.
	ModeBulk Mode = "bulk"

	// ModeServerSide recomputes a smaller targeted query per request and
	// applies filtering and paging to that window. The cache is bypassed.
	ModeServerSide Mode = "server_side"
)

// Record is one package entry returned by or derived from the registry.
// Records are never mutated after creation; filtering and sorting build
// new slices instead of editing fields.
type Record struct {
	Identifier       string            `json:"slug"`
	DisplayName      string            `json:"name"`
	Author           string            `json:"author,omitempty"`
	AuthorProfileURL string            `json:"author_profile,omitempty"`
	ShortDescription string            `json:"short_description,omitempty"`
	Version          string            `json:"version,omitempty"`
	QualityScore     int               `json:"rating"`
	RatingCount      int               `json:"num_ratings"`
	Popularity       int               `json:"active_installs"`
	AddedAt          time.Time         `json:"added"`
	UpdatedAt        time.Time         `json:"last_updated"`
	Tags             map[string]string `json:"tags,omitempty"`
	Icons            map[string]string `json:"icons,omitempty"`
	HomepageURL      string            `json:"homepage,omitempty"`
	DownloadURL      string            `json:"download_link,omitempty"`
}

// Filters is the set of user-supplied predicates applied to a pool.
// Zero values leave the corresponding rule unbounded.
type Filters struct {
	SearchText      string
	MaxPopularity   int
	MinQualityStars int
}

// QueryRequest describes one upstream registry query.
type QueryRequest struct {
	Browse  Strategy
	Search  string
	Tag     string
	Author  string
	PerPage int
	Page    int
}

// PageResult is one page of a ranked result set.
type PageResult struct {
	Items      []Record
	TotalCount int
	TotalPages int
	Page       int
}
