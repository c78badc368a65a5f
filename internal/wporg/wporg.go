// Package wporg queries the WordPress.org plugin directory API and maps
// its responses onto pipeline records.
package wporg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iconick/hiddengems/client"
	"github.com/iconick/hiddengems/internal/core"
)

const (
	// DefaultURL is the plugin information API endpoint.
	DefaultURL = "https://api.wordpress.org/plugins/info/1.2/"

	// MaxPerPage is the largest page size the upstream accepts.
	MaxPerPage = 500
)

// requestFields is the allow-list of record fields asked of the upstream.
var requestFields = []string{
	"name", "slug", "version", "author", "author_profile",
	"rating", "num_ratings", "active_installs", "last_updated",
	"added", "short_description", "tags", "icons", "homepage",
	"download_link",
}

// Registry is the single upstream registry client.
type Registry struct {
	baseURL string
	client  client.Getter
}

// New creates a registry client. If baseURL is empty, DefaultURL is used.
func New(baseURL string, c client.Getter) *Registry {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Registry{
		baseURL: strings.TrimSuffix(baseURL, "?"),
		client:  c,
	}
}

type queryResponse struct {
	Plugins []pluginInfo `json:"plugins"`
}

// pluginInfo tolerates the upstream's loose typing: numbers arrive as
// ints or floats, and maps collapse to empty arrays when they have no
// entries.
type pluginInfo struct {
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	Version          string         `json:"version"`
	Author           string         `json:"author"`
	AuthorProfile    string         `json:"author_profile"`
	Rating           interface{}    `json:"rating"`
	NumRatings       interface{}    `json:"num_ratings"`
	ActiveInstalls   interface{}    `json:"active_installs"`
	LastUpdated      string         `json:"last_updated"`
	Added            string         `json:"added"`
	ShortDescription string         `json:"short_description"`
	Tags             looseStringMap `json:"tags"`
	Icons            looseStringMap `json:"icons"`
	Homepage         string         `json:"homepage"`
	DownloadLink     string         `json:"download_link"`
}

// Query issues one query_plugins request and maps the result. A payload
// without a plugins array is malformed: the caller cannot tell records
// from garbage without it.
func (r *Registry) Query(ctx context.Context, q core.QueryRequest) ([]core.Record, error) {
	var resp queryResponse
	if err := r.client.GetJSON(ctx, r.buildURL(q), &resp); err != nil {
		return nil, classify(err)
	}

	if resp.Plugins == nil {
		return nil, core.NewFailure(core.UpstreamMalformed, "response missing plugins list", nil)
	}

	records := make([]core.Record, 0, len(resp.Plugins))
	for _, p := range resp.Plugins {
		if p.Slug == "" {
			// identifier is the pipeline key; entries without one are unusable
			continue
		}
		records = append(records, core.Record{
			Identifier:       p.Slug,
			DisplayName:      p.Name,
			Author:           p.Author,
			AuthorProfileURL: p.AuthorProfile,
			ShortDescription: p.ShortDescription,
			Version:          p.Version,
			QualityScore:     extractInt(p.Rating),
			RatingCount:      extractInt(p.NumRatings),
			Popularity:       extractInt(p.ActiveInstalls),
			AddedAt:          parseTime(p.Added),
			UpdatedAt:        parseTime(p.LastUpdated),
			Tags:             p.Tags,
			Icons:            p.Icons,
			HomepageURL:      p.Homepage,
			DownloadURL:      p.DownloadLink,
		})
	}
	return records, nil
}

func (r *Registry) buildURL(q core.QueryRequest) string {
	browse := q.Browse
	if browse == "" {
		browse = core.Search
	}
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = core.DefaultPageSize
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	vals := url.Values{}
	vals.Set("action", "query_plugins")
	vals.Set("request[browse]", string(browse))
	vals.Set("request[per_page]", strconv.Itoa(perPage))
	vals.Set("request[page]", strconv.Itoa(page))
	for i, f := range requestFields {
		vals.Set(fmt.Sprintf("request[fields][%d]", i), f)
	}
	if q.Search != "" {
		vals.Set("request[search]", q.Search)
	}
	if q.Tag != "" {
		vals.Set("request[tag]", q.Tag)
	}
	if q.Author != "" {
		vals.Set("request[author]", q.Author)
	}

	return r.baseURL + "?" + vals.Encode()
}

// classify maps transport errors onto the pipeline failure taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, client.ErrTimeout):
		return core.NewFailure(core.UpstreamTimeout, "upstream registry timed out", err)
	case errors.Is(err, client.ErrDecode):
		return core.NewFailure(core.UpstreamMalformed, "upstream payload could not be decoded", err)
	default:
		// connection failures, 5xx, rate limiting, and other non-2xx statuses
		return core.NewFailure(core.UpstreamUnavailable, "upstream registry unavailable", err)
	}
}

// looseStringMap decodes either a JSON object or the empty array PHP
// emits when a map has no entries. Non-string values are dropped.
type looseStringMap map[string]string

func (m *looseStringMap) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = nil
		return nil
	}
	out := make(looseStringMap, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	*m = out
	return nil
}

func extractInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return 0
}

// timeLayouts covers the formats the directory emits for added and
// last_updated ("2024-01-15" and "2024-01-15 8:50am GMT").
var timeLayouts = []string{
	"2006-01-02 3:04pm MST",
	"2006-01-02 3:04pm",
	"2006-01-02",
	time.RFC3339,
}

// parseTime returns the zero time for unparsable input, so stale or
// garbled timestamps sort oldest instead of failing the query.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
