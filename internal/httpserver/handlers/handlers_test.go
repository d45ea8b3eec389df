package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/trusteddatanow/catalog/internal/catalog"
	"github.com/trusteddatanow/catalog/internal/domain"
	"github.com/trusteddatanow/catalog/internal/httpserver/deps"
	"github.com/trusteddatanow/catalog/internal/logger"
)

func testDeps(t *testing.T, resources []*domain.Resource) deps.Deps {
	t.Helper()
	store := catalog.NewStore(filepath.Join(t.TempDir(), "data.json"))
	if resources != nil {
		if err := store.Save(resources); err != nil {
			t.Fatal(err)
		}
	}
	return deps.Deps{
		Logger:    logger.Nop(),
		StartTime: time.Now(),
		Version:   "test",
		Catalog:   catalog.NewCache(store),
	}
}

func sampleCatalog() []*domain.Resource {
	return []*domain.Resource{
		{
			URL:    "https://earthquake.usgs.gov/feed",
			Name:   "USGS Feed",
			Type:   domain.TypeTags{"earthquake"},
			Public: true,
			Active: true,
		},
		{
			URL:    "https://flood.example.org",
			Name:   "Flood Maps",
			Type:   domain.TypeTags{"flood", "extreme-weather"},
			Public: false,
			Active: false,
		},
	}
}

func TestResources(t *testing.T) {
	d := testDeps(t, sampleCatalog())

	req := httptest.NewRequest(http.MethodGet, "/api/resources", nil)
	rec := httptest.NewRecorder()
	Resources(d).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got []*domain.Resource
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a resource array: %v", err)
	}
	if len(got) != 2 || got[0].URL != "https://earthquake.usgs.gov/feed" {
		t.Errorf("response = %v, want the catalog in order", got)
	}
}

func TestResourcesCatalogMissing(t *testing.T) {
	d := testDeps(t, nil)

	rec := httptest.NewRecorder()
	Resources(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resources", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 for missing catalog", rec.Code)
	}
}

func TestStats(t *testing.T) {
	d := testDeps(t, sampleCatalog())

	rec := httptest.NewRecorder()
	Stats(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Total != 2 || got.Active != 1 || got.Inactive != 1 || got.Public != 1 {
		t.Errorf("stats = %+v", got)
	}
	if got.ByType["flood"] != 1 || got.ByType["earthquake"] != 1 || got.ByType["extreme-weather"] != 1 {
		t.Errorf("ByType = %v", got.ByType)
	}
}

func TestHealthz(t *testing.T) {
	d := testDeps(t, sampleCatalog())

	rec := httptest.NewRecorder()
	Healthz(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got healthzResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "ok" || got.Version != "test" {
		t.Errorf("healthz = %+v", got)
	}
}

func TestReadyz(t *testing.T) {
	d := testDeps(t, sampleCatalog())

	rec := httptest.NewRecorder()
	Readyz(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestReadyzCatalogMissing(t *testing.T) {
	d := testDeps(t, nil)

	rec := httptest.NewRecorder()
	Readyz(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when catalog is unreadable", rec.Code)
	}
}
