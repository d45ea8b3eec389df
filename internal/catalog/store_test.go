package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trusteddatanow/catalog/internal/domain"
)

func sampleResources() []*domain.Resource {
	return []*domain.Resource{
		{
			URL:         "https://earthquake.usgs.gov/feed",
			Name:        "USGS Feed",
			Description: "Realtime earthquakes",
			Type:        domain.TypeTags{"earthquake"},
			Public:      true,
			Active:      true,
		},
		{
			URL:         "https://alerts.noaa.example",
			Name:        "NOAA Alerts",
			Description: "Storm alerts",
			Type:        domain.TypeTags{"hurricane", "extreme-weather"},
			Public:      true,
			Active:      false,
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewStore(path)

	if err := store.Save(sampleResources()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(loaded))
	}
	if loaded[0].URL != "https://earthquake.usgs.gov/feed" {
		t.Errorf("record order not preserved: %q first", loaded[0].URL)
	}
	if len(loaded[1].Type) != 2 {
		t.Errorf("Type = %v, want 2 tags", loaded[1].Type)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Load()
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Load() error = %v, want *ReadError", err)
	}
}

func TestStoreLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewStore(path).Load()
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Load() error = %v, want *ReadError", err)
	}
}

func TestStoreSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "data.json"))

	if err := store.Save(sampleResources()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "data.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contents = %v, want only data.json", names)
	}
}

func TestStoreSaveNilAsEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := NewStore(path).Save(nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("file contents = %q, want []", raw)
	}
}

func TestStoreSaveWriteError(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "no-such-dir", "data.json"))

	err := store.Save(sampleResources())
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Save() error = %v, want *WriteError", err)
	}
}

func TestStoreFieldNamesOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := NewStore(path).Save(sampleResources()[:1]); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		t.Fatalf("file is not a JSON array of objects: %v", err)
	}
	if _, ok := docs[0]["researchOrOps"]; !ok {
		t.Error("field researchOrOps missing on disk")
	}
	if v, ok := docs[0]["type"]; !ok || v != "earthquake" {
		t.Errorf("single-tag type on disk = %v, want bare string", v)
	}
}
