package probe

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trusteddatanow/catalog/internal/catalog"
	"github.com/trusteddatanow/catalog/internal/domain"
	"github.com/trusteddatanow/catalog/internal/logger"
)

// OutcomeCache stores probe outcomes keyed by canonical URL, with the
// recheck window as TTL. Implemented by the redis probe cache; nil disables
// caching. All cache traffic is best effort.
type OutcomeCache interface {
	Get(ctx context.Context, url string) (*Outcome, bool, error)
	Set(ctx context.Context, url string, out *Outcome) error
}

// SweepOptions configures a sweep.
type SweepOptions struct {
	Workers       int
	RecheckWindow time.Duration
	CheckAll      bool // probe every record regardless of lastChecked
}

// SweepSummary reports the outcome of one sweep run.
type SweepSummary struct {
	Checked      int // records probed (or served from cache)
	SkippedFresh int // records with a recent lastChecked
	CacheHits    int
	Active       int
	Inactive     int
}

// Sweep probes every catalog record for liveness and persists the result.
// Probes run across a bounded worker pool; the catalog is rewritten exactly
// once at the end, so a cancelled run leaves the previous catalog intact.
type Sweep struct {
	store   *catalog.Store
	checker *Checker
	cache   OutcomeCache
	logger  logger.Logger
	opts    SweepOptions
	now     func() time.Time
}

// NewSweep creates an accessibility sweep. cache may be nil.
func NewSweep(store *catalog.Store, checker *Checker, cache OutcomeCache, log logger.Logger, opts SweepOptions) *Sweep {
	return &Sweep{
		store:   store,
		checker: checker,
		cache:   cache,
		logger:  log,
		opts:    opts,
		now:     time.Now,
	}
}

// Run executes the sweep. It returns an error only when the catalog cannot
// be read or rewritten, or the run is cancelled; individual probe failures
// are recorded on their records and summarized.
func (s *Sweep) Run(ctx context.Context) (*SweepSummary, error) {
	resources, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog loaded",
		logger.String("path", s.store.Path()),
		logger.Int("records", len(resources)))

	now := s.now().UTC()
	summary := &SweepSummary{}

	var toCheck []int
	for i, res := range resources {
		if !s.opts.CheckAll && res.CheckedWithin(s.opts.RecheckWindow, now) {
			summary.SkippedFresh++
			continue
		}
		toCheck = append(toCheck, i)
	}

	if len(toCheck) == 0 {
		s.logger.Info("no records due for a check")
		return summary, nil
	}
	s.logger.Info("checking accessibility",
		logger.Int("records", len(toCheck)),
		logger.Int("workers", s.opts.Workers))

	// Each worker owns exactly one slot, so there is no shared mutable
	// state; order and count of the catalog never change.
	outcomes := make([]Outcome, len(resources))
	cacheHits := make([]bool, len(resources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, i := range toCheck {
		i := i
		g.Go(func() error {
			outcomes[i], cacheHits[i] = s.resolve(gctx, resources[i].URL)
			return nil
		})
	}
	_ = g.Wait()

	// Abandon without writing: the previous catalog stays as-is.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	checkedAt := now.Format(time.RFC3339)
	for _, i := range toCheck {
		s.apply(resources[i], outcomes[i], checkedAt)
		summary.Checked++
		if cacheHits[i] {
			summary.CacheHits++
		}
		if outcomes[i].Active {
			summary.Active++
		} else {
			summary.Inactive++
			s.logger.Info("resource inactive",
				logger.String("name", resources[i].Name),
				logger.String("url", resources[i].URL),
				logger.String("reason", outcomes[i].Reason))
		}
	}

	if err := s.store.Save(resources); err != nil {
		return nil, err
	}

	s.logger.Info("accessibility sweep complete",
		logger.Int("checked", summary.Checked),
		logger.Int("skipped_fresh", summary.SkippedFresh),
		logger.Int("cache_hits", summary.CacheHits),
		logger.Int("active", summary.Active),
		logger.Int("inactive", summary.Inactive))
	return summary, nil
}

// resolve answers one URL, from cache when possible.
func (s *Sweep) resolve(ctx context.Context, url string) (Outcome, bool) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, url)
		if err != nil {
			s.logger.Warn("probe cache read failed", logger.String("url", url), logger.Error(err))
		} else if found {
			return *cached, true
		}
	}

	out := s.checker.Check(ctx, url)

	if s.cache != nil && ctx.Err() == nil {
		if err := s.cache.Set(ctx, url, &out); err != nil {
			s.logger.Warn("probe cache write failed", logger.String("url", url), logger.Error(err))
		}
	}
	return out, false
}

// apply writes a probe outcome onto its record. Only the probe-owned fields
// plus active (and public, on an auth challenge) ever change.
func (s *Sweep) apply(res *domain.Resource, out Outcome, checkedAt string) {
	res.Active = out.Active
	res.LastChecked = checkedAt
	res.AccessibilityStatus = out.StatusCode
	if out.Active {
		res.AccessibilityError = ""
	} else {
		res.AccessibilityError = out.Reason
	}
	// A reachable-but-gated resource is not publicly accessible; any other
	// outcome leaves public as previously recorded.
	if out.AuthChallenge {
		res.Public = false
	}
}
