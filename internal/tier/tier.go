// Package tier derives the presentation-only gem tier from popularity
// and quality thresholds.
package tier

import "github.com/iconick/hiddengems/internal/core"

// Tier labels how far under the radar a record currently is.
type Tier string

const (
	SuperHidden Tier = "super_hidden"
	Hidden      Tier = "hidden"
	Emerging    Tier = "emerging"
	None        Tier = ""
)

// Thresholds are display heuristics, not business rules; callers tune
// them through configuration.
type Thresholds struct {
	SuperHiddenMaxInstalls int
	SuperHiddenMinScore    int
	HiddenMaxInstalls      int
	HiddenMinScore         int
	EmergingMaxInstalls    int
	EmergingMinScore       int
}

// DefaultThresholds mirrors the badge heuristics of the admin UI.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SuperHiddenMaxInstalls: 1000,
		SuperHiddenMinScore:    60,
		HiddenMaxInstalls:      50000,
		HiddenMinScore:         40,
		EmergingMaxInstalls:    100000,
		EmergingMinScore:       20,
	}
}

// Classify returns the tier for a record. Purely derived from popularity
// and quality score; recomputed on demand, never stored.
func Classify(rec core.Record, t Thresholds) Tier {
	switch {
	case rec.Popularity < t.SuperHiddenMaxInstalls && rec.QualityScore >= t.SuperHiddenMinScore:
		return SuperHidden
	case rec.Popularity < t.HiddenMaxInstalls && rec.QualityScore >= t.HiddenMinScore:
		return Hidden
	case rec.Popularity < t.EmergingMaxInstalls && rec.QualityScore >= t.EmergingMinScore:
		return Emerging
	default:
		return None
	}
}
