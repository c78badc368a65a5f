package sieve

import (
	"sort"

	"github.com/iconick/hiddengems/internal/core"
)

// Sort returns a new slice ordered by key, descending. The sort is
// stable: records with equal keys keep their relative input order. Zero
// timestamps sort oldest.
func Sort(records []core.Record, key core.SortKey) []core.Record {
	out := make([]core.Record, len(records))
	copy(out, records)

	switch key {
	case core.SortHighestRated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].QualityScore > out[j].QualityScore
		})
	case core.SortRecentlyUpdated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AddedAt.After(out[j].AddedAt)
		})
	}
	return out
}
