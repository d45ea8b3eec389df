package ingest

import (
	"context"

	"github.com/trusteddatanow/catalog/internal/catalog"
	"github.com/trusteddatanow/catalog/internal/logger"
	"github.com/trusteddatanow/catalog/internal/sources/forms"
)

// Summary reports the outcome of one ingestion run.
type Summary struct {
	MergeStats
	Skipped []*forms.MalformedRowError
}

// Job merges a batch of form-submission rows into the catalog. It is a
// single run-to-completion batch transform: load the full catalog, fold the
// batch in, rewrite the catalog once.
type Job struct {
	store  *catalog.Store
	loader *forms.Loader
	mapper *forms.Mapper
	logger logger.Logger
}

// NewJob creates an ingestion job.
func NewJob(store *catalog.Store, loader *forms.Loader, log logger.Logger) *Job {
	return &Job{
		store:  store,
		loader: loader,
		mapper: forms.NewMapper(),
		logger: log,
	}
}

// Run executes the job against the export at source. It returns an error
// only when the catalog cannot be read or rewritten, or the export cannot be
// loaded at all; malformed rows are skipped and reported in the summary.
func (j *Job) Run(ctx context.Context, source string) (*Summary, error) {
	existing, err := j.store.Load()
	if err != nil {
		return nil, err
	}
	j.logger.Info("catalog loaded",
		logger.String("path", j.store.Path()),
		logger.Int("records", len(existing)))

	export, err := j.loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	if export.Empty() {
		j.logger.Warn("export carries no data rows, catalog unchanged",
			logger.String("source", source))
		return &Summary{}, nil
	}

	incoming, skipped := j.mapper.MapRows(export)
	for _, bad := range skipped {
		j.logger.Warn("skipping malformed row", logger.String("reason", bad.Error()))
	}

	merged, stats := Merge(existing, incoming)

	if err := j.store.Save(merged); err != nil {
		return nil, err
	}

	j.logger.Info("ingestion complete",
		logger.Int("added", stats.Added),
		logger.Int("updated", stats.Updated),
		logger.Int("stale", len(stats.Stale)),
		logger.Int("skipped", len(skipped)))
	for _, url := range stats.Stale {
		j.logger.Debug("catalog record absent from batch", logger.String("url", url))
	}

	return &Summary{MergeStats: *stats, Skipped: skipped}, nil
}
