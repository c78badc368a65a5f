package hiddengems

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewServiceEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"plugins": [
			{"name": "Tiny Forms", "slug": "tiny-forms", "rating": 88, "active_installs": 700},
			{"name": "Mega Builder", "slug": "mega-builder", "rating": 95, "active_installs": 3000000}
		]}`))
	}))
	defer server.Close()

	svc := NewService(NewWPOrgRegistry(server.URL, nil), nil)
	res, err := svc.Query(context.Background(), Request{MaxPopularity: 100000})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
	item := res.Items[0]
	if item.Identifier != "tiny-forms" {
		t.Errorf("unexpected identifier: %q", item.Identifier)
	}
	if item.Tier != TierSuperHidden {
		t.Errorf("expected super hidden tier, got %q", item.Tier)
	}
}

func TestReexportedHelpers(t *testing.T) {
	records := []Record{
		{Identifier: "a", Popularity: 500, QualityScore: 90},
		{Identifier: "b", Popularity: 900000, QualityScore: 90},
	}

	filtered := Filter(records, Filters{MaxPopularity: 1000})
	if len(filtered) != 1 || filtered[0].Identifier != "a" {
		t.Errorf("unexpected filter result: %v", filtered)
	}

	page := Paginate(filtered, 1, DefaultPageSize)
	if page.TotalCount != 1 || page.TotalPages != 1 {
		t.Errorf("unexpected page metadata: %+v", page)
	}

	if got := Classify(filtered[0], DefaultThresholds()); got != TierSuperHidden {
		t.Errorf("expected super hidden, got %q", got)
	}
}
