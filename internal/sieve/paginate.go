package sieve

import "github.com/iconick/hiddengems/internal/core"

// Paginate slices records into the requested fixed-size page. The page
// number is clamped to [1, totalPages], so an excessive request returns
// the last page instead of an error or an out-of-range slice. totalPages
// is at least 1 even for an empty input.
func Paginate(records []core.Record, page, pageSize int) core.PageResult {
	if pageSize < 1 {
		pageSize = core.DefaultPageSize
	}

	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return core.PageResult{
		Items:      records[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
	}
}
