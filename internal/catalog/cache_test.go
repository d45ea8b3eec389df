package catalog

import (
	"path/filepath"
	"testing"
)

func TestCacheReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewStore(path)
	if err := store.Save(sampleResources()); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(store)
	first, err := cache.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("Get() returned %d records, want 2", len(first))
	}

	// shrink the catalog and expect the cache to notice
	if err := store.Save(sampleResources()[:1]); err != nil {
		t.Fatal(err)
	}
	second, err := cache.Get()
	if err != nil {
		t.Fatalf("Get() after rewrite error = %v", err)
	}
	if len(second) != 1 {
		t.Errorf("Get() returned %d records after rewrite, want 1", len(second))
	}
}

func TestCacheMissingFile(t *testing.T) {
	cache := NewCache(NewStore(filepath.Join(t.TempDir(), "absent.json")))
	if _, err := cache.Get(); err == nil {
		t.Error("Get() should return error for missing catalog")
	}
}
