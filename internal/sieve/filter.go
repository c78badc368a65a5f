// Package sieve holds the pure filtering, ranking, and pagination steps
// shared by both discovery modes. Nothing here touches the network or
// mutates its input.
package sieve

import (
	"strings"

	"github.com/iconick/hiddengems/internal/core"
)

// Match reports whether a record passes every supplied filter. Zero-valued
// filters are unbounded: a record with no rating still matches when
// MinQualityStars is 0.
func Match(rec core.Record, f core.Filters) bool {
	if f.SearchText != "" {
		if !strings.Contains(searchText(rec), strings.ToLower(f.SearchText)) {
			return false
		}
	}
	if f.MaxPopularity > 0 && rec.Popularity > f.MaxPopularity {
		return false
	}
	if f.MinQualityStars > 0 && rec.QualityScore < f.MinQualityStars*20 {
		return false
	}
	return true
}

// Filter returns the records matching f, preserving input order.
func Filter(records []core.Record, f core.Filters) []core.Record {
	out := make([]core.Record, 0, len(records))
	for _, rec := range records {
		if Match(rec, f) {
			out = append(out, rec)
		}
	}
	return out
}

// searchText concatenates the fields the free-text filter runs over.
func searchText(rec core.Record) string {
	parts := make([]string, 0, 3+len(rec.Tags))
	parts = append(parts, rec.DisplayName, rec.ShortDescription, rec.Author)
	for _, label := range rec.Tags {
		parts = append(parts, label)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
