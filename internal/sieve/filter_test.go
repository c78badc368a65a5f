package sieve

import (
	"fmt"
	"testing"

	"github.com/iconick/hiddengems/internal/core"
)

func TestFilterMaxPopularity(t *testing.T) {
	records := []core.Record{
		{Identifier: "a", Popularity: 500},
		{Identifier: "b", Popularity: 60000},
		{Identifier: "c", Popularity: 200000},
	}

	got := Filter(records, core.Filters{MaxPopularity: 100000})
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Identifier != "a" || got[1].Identifier != "b" {
		t.Errorf("unexpected survivors: %q, %q", got[0].Identifier, got[1].Identifier)
	}
}

func TestFilterMinQualityStars(t *testing.T) {
	// 4 stars is a score of 80 on the 0-100 scale
	below := core.Record{Identifier: "below", QualityScore: 79}
	atBoundary := core.Record{Identifier: "at", QualityScore: 80}

	f := core.Filters{MinQualityStars: 4}
	if Match(below, f) {
		t.Error("score 79 should not pass a 4-star minimum")
	}
	if !Match(atBoundary, f) {
		t.Error("score 80 should pass a 4-star minimum")
	}
}

func TestFilterSearchText(t *testing.T) {
	rec := core.Record{
		Identifier:       "tiny-forms",
		DisplayName:      "Tiny Forms",
		ShortDescription: "Lightweight contact forms.",
		Author:           "Jo Smith",
		Tags:             map[string]string{"contact": "Contact"},
	}

	cases := []struct {
		search string
		want   bool
	}{
		{"tiny", true},
		{"FORMS", true},
		{"lightweight", true},
		{"smith", true},
		{"contact", true},
		{"backup", false},
	}
	for _, tc := range cases {
		if got := Match(rec, core.Filters{SearchText: tc.search}); got != tc.want {
			t.Errorf("search %q: expected %v, got %v", tc.search, tc.want, got)
		}
	}
}

func TestFilterZeroValuesUnbounded(t *testing.T) {
	rec := core.Record{Identifier: "a", Popularity: 5000000, QualityScore: 0}
	if !Match(rec, core.Filters{}) {
		t.Error("empty filters should match everything")
	}
}

func TestFilterIdempotent(t *testing.T) {
	records := []core.Record{
		{Identifier: "a", Popularity: 100, QualityScore: 90},
		{Identifier: "b", Popularity: 99999999, QualityScore: 10},
		{Identifier: "c", Popularity: 300, QualityScore: 85},
	}
	f := core.Filters{MaxPopularity: 1000, MinQualityStars: 4}

	once := Filter(records, f)
	twice := Filter(once, f)

	if len(once) != len(twice) {
		t.Fatalf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Identifier != twice[i].Identifier {
			t.Errorf("position %d differs after second pass", i)
		}
	}
}

func TestFilterCombined(t *testing.T) {
	records := []core.Record{
		{Identifier: "match", DisplayName: "Backup Buddy", Popularity: 800, QualityScore: 88},
		{Identifier: "too-popular", DisplayName: "Backup Pro", Popularity: 900000, QualityScore: 95},
		{Identifier: "wrong-text", DisplayName: "Cache Thing", Popularity: 500, QualityScore: 90},
	}

	got := Filter(records, core.Filters{SearchText: "backup", MaxPopularity: 1000, MinQualityStars: 4})
	if len(got) != 1 || got[0].Identifier != "match" {
		t.Errorf("expected only the conjunctive match, got %v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := make([]core.Record, 50)
	for i := range records {
		records[i] = core.Record{Identifier: fmt.Sprintf("p%d", i), Popularity: i * 100}
	}
	Filter(records, core.Filters{MaxPopularity: 1000})

	for i := range records {
		if records[i].Identifier != fmt.Sprintf("p%d", i) {
			t.Fatal("input slice mutated")
		}
	}
}
