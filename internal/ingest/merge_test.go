package ingest

import (
	"reflect"
	"testing"

	"github.com/trusteddatanow/catalog/internal/domain"
)

func res(url, name string) *domain.Resource {
	return &domain.Resource{
		URL:    url,
		Name:   name,
		Type:   domain.TypeTags{"flood"},
		Public: true,
		Active: true,
	}
}

func urls(resources []*domain.Resource) []string {
	out := make([]string, len(resources))
	for i, r := range resources {
		out[i] = r.URL
	}
	return out
}

func TestMergeAppend(t *testing.T) {
	existing := []*domain.Resource{
		res("https://a.example", "A"),
		res("https://b.example", "B"),
	}
	incoming := []*domain.Resource{res("https://c.example", "C")}

	merged, stats := Merge(existing, incoming)

	if len(merged) != 3 {
		t.Fatalf("merged length = %d, want 3", len(merged))
	}
	if stats.Added != 1 || stats.Updated != 0 {
		t.Errorf("stats = %+v, want 1 added, 0 updated", stats)
	}
	want := []string{"https://a.example", "https://b.example", "https://c.example"}
	if !reflect.DeepEqual(urls(merged), want) {
		t.Errorf("order = %v, want %v", urls(merged), want)
	}
	// prior records untouched
	if merged[0] != existing[0] || merged[1] != existing[1] {
		t.Error("existing records should be unchanged on append")
	}
}

func TestMergeUpdateInPlace(t *testing.T) {
	existing := []*domain.Resource{
		res("https://a.example", "A"),
		res("https://example.com/data", "Old name"),
		res("https://b.example", "B"),
	}
	existing[1].Active = true
	existing[1].Description = "old description"

	update := res("https://example.com/data", "New name")
	update.Active = false
	update.Description = "new description"

	merged, stats := Merge(existing, []*domain.Resource{update})

	if len(merged) != 3 {
		t.Fatalf("merged length = %d, want 3 (no duplicate appended)", len(merged))
	}
	if stats.Updated != 1 || stats.Added != 0 {
		t.Errorf("stats = %+v, want 1 updated, 0 added", stats)
	}
	got := merged[1]
	if got.Name != "New name" || got.Description != "new description" || got.Active {
		t.Errorf("record not overwritten: %+v", got)
	}
	// position preserved
	if merged[0].URL != "https://a.example" || merged[2].URL != "https://b.example" {
		t.Error("record order changed on update")
	}
}

func TestMergePreservesProbeFields(t *testing.T) {
	existing := []*domain.Resource{res("https://a.example", "A")}
	existing[0].LastChecked = "2026-02-01T00:00:00Z"
	existing[0].AccessibilityStatus = 200

	merged, _ := Merge(existing, []*domain.Resource{res("https://a.example", "A2")})

	got := merged[0]
	if got.LastChecked != "2026-02-01T00:00:00Z" || got.AccessibilityStatus != 200 {
		t.Errorf("probe fields lost on overwrite: %+v", got)
	}
	if got.Name != "A2" {
		t.Errorf("Name = %q, want A2", got.Name)
	}
}

func TestMergeIdempotent(t *testing.T) {
	existing := []*domain.Resource{res("https://a.example", "A")}
	batch := func() []*domain.Resource {
		return []*domain.Resource{
			res("https://a.example", "A updated"),
			res("https://b.example", "B"),
		}
	}

	once, stats1 := Merge(existing, batch())
	twice, stats2 := Merge(once, batch())

	if !reflect.DeepEqual(once, twice) {
		t.Error("re-running the same batch should be a no-op")
	}
	if stats1.Added != 1 || stats1.Updated != 1 {
		t.Errorf("first run stats = %+v", stats1)
	}
	if stats2.Added != 0 || stats2.Updated != 2 {
		t.Errorf("second run stats = %+v", stats2)
	}
}

func TestMergeURLUniqueness(t *testing.T) {
	existing := []*domain.Resource{res("https://a.example", "A")}
	incoming := []*domain.Resource{
		res("https://b.example", "B v1"),
		res("https://b.example", "B v2"),
		res("https://a.example", "A v1"),
		res("https://a.example", "A v2"),
	}

	merged, stats := Merge(existing, incoming)

	seen := map[string]int{}
	for _, r := range merged {
		seen[r.URL]++
	}
	for url, n := range seen {
		if n != 1 {
			t.Errorf("url %s appears %d times, want 1", url, n)
		}
	}
	if len(merged) != 2 {
		t.Errorf("merged length = %d, want 2", len(merged))
	}
	// later rows win
	if merged[1].Name != "B v2" || merged[0].Name != "A v2" {
		t.Errorf("last submission should win: %v / %v", merged[0].Name, merged[1].Name)
	}
	if stats.Added != 1 || stats.Updated != 1 {
		t.Errorf("stats = %+v, want 1 added, 1 updated", stats)
	}
}

func TestMergeStaleDetection(t *testing.T) {
	existing := []*domain.Resource{
		res("https://a.example", "A"),
		res("https://b.example", "B"),
	}
	merged, stats := Merge(existing, []*domain.Resource{res("https://a.example", "A")})

	if len(merged) != 2 {
		t.Fatalf("merged length = %d, want 2 (stale records are kept)", len(merged))
	}
	if !reflect.DeepEqual(stats.Stale, []string{"https://b.example"}) {
		t.Errorf("stale = %v, want [https://b.example]", stats.Stale)
	}
}
