package ingest

import (
	"github.com/trusteddatanow/catalog/internal/domain"
)

// MergeStats summarizes one merge pass.
type MergeStats struct {
	Added   int      // new records appended
	Updated int      // existing records overwritten
	Stale   []string // catalog URLs absent from the batch (kept, never removed)
}

// Merge upserts incoming records into the catalog sequence, keyed by
// canonical URL. A match overwrites the existing record in place (the form
// never carries probe results, so probe-owned fields are preserved); a miss
// appends at the end. Later batch rows win over earlier ones for the same
// URL without creating duplicates. Existing records are never removed.
func Merge(existing, incoming []*domain.Resource) ([]*domain.Resource, *MergeStats) {
	merged := make([]*domain.Resource, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, res := range merged {
		index[res.URL] = i
	}

	stats := &MergeStats{}
	seenInBatch := make(map[string]bool, len(incoming))

	for _, res := range incoming {
		if i, found := index[res.URL]; found {
			res.CopyProbeFields(merged[i])
			merged[i] = res
			if !seenInBatch[res.URL] {
				stats.Updated++
			}
		} else {
			index[res.URL] = len(merged)
			merged = append(merged, res)
			if !seenInBatch[res.URL] {
				stats.Added++
			}
		}
		seenInBatch[res.URL] = true
	}

	for _, res := range existing {
		if !seenInBatch[res.URL] {
			stats.Stale = append(stats.Stale, res.URL)
		}
	}

	return merged, stats
}
