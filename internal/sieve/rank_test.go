package sieve

import (
	"testing"
	"time"

	"github.com/iconick/hiddengems/internal/core"
)

func day(n int) time.Time {
	return time.Date(2025, 1, n, 0, 0, 0, 0, time.UTC)
}

func TestSortHighestRated(t *testing.T) {
	records := []core.Record{
		{Identifier: "mid", QualityScore: 60},
		{Identifier: "top", QualityScore: 95},
		{Identifier: "low", QualityScore: 20},
	}

	got := Sort(records, core.SortHighestRated)
	want := []string{"top", "mid", "low"}
	for i, id := range want {
		if got[i].Identifier != id {
			t.Errorf("position %d: expected %q, got %q", i, id, got[i].Identifier)
		}
	}
}

func TestSortNewest(t *testing.T) {
	records := []core.Record{
		{Identifier: "old", AddedAt: day(1)},
		{Identifier: "new", AddedAt: day(20)},
		{Identifier: "mid", AddedAt: day(10)},
	}

	got := Sort(records, core.SortNewest)
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if got[i].Identifier != id {
			t.Errorf("position %d: expected %q, got %q", i, id, got[i].Identifier)
		}
	}
}

func TestSortRecentlyUpdated(t *testing.T) {
	records := []core.Record{
		{Identifier: "stale", UpdatedAt: day(2)},
		{Identifier: "fresh", UpdatedAt: day(25)},
	}

	got := Sort(records, core.SortRecentlyUpdated)
	if got[0].Identifier != "fresh" {
		t.Errorf("expected fresh first, got %q", got[0].Identifier)
	}
}

func TestSortStableOnTies(t *testing.T) {
	records := []core.Record{
		{Identifier: "first", QualityScore: 80},
		{Identifier: "second", QualityScore: 80},
		{Identifier: "third", QualityScore: 80},
	}

	got := Sort(records, core.SortHighestRated)
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if got[i].Identifier != id {
			t.Errorf("tie broke input order at %d: got %q", i, got[i].Identifier)
		}
	}
}

func TestSortDeterministicAcrossPermutations(t *testing.T) {
	a := core.Record{Identifier: "a", QualityScore: 90}
	b := core.Record{Identifier: "b", QualityScore: 70}
	c := core.Record{Identifier: "c", QualityScore: 50}

	perms := [][]core.Record{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, p := range perms {
		got := Sort(p, core.SortHighestRated)
		if got[0].Identifier != "a" || got[1].Identifier != "b" || got[2].Identifier != "c" {
			t.Errorf("permutation %v sorted to %v", p, got)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := []core.Record{
		{Identifier: "z", QualityScore: 10},
		{Identifier: "a", QualityScore: 99},
	}
	Sort(records, core.SortHighestRated)

	if records[0].Identifier != "z" {
		t.Error("input slice mutated")
	}
}

func TestSortZeroTimestampsLast(t *testing.T) {
	records := []core.Record{
		{Identifier: "unknown"},
		{Identifier: "dated", AddedAt: day(5)},
	}

	got := Sort(records, core.SortNewest)
	if got[0].Identifier != "dated" {
		t.Errorf("zero timestamp should sort oldest, got %q first", got[0].Identifier)
	}
}
