package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"appguard/internal/report/models"
)

// Stats is the aggregate triage snapshot shown on the investigator
// dashboard. Under concurrent writers Total may transiently differ from the
// sum of the per-status counts; each count is individually consistent.
type Stats struct {
	Total         int `json:"total"`
	Pending       int `json:"pending"`
	Investigating int `json:"investigating"`
	Resolved      int `json:"resolved"`
}

// StatsCache is an optional read-through cache for the stats snapshot.
// Implementations must treat misses and backend failures identically: a
// broken cache degrades to store reads, never to request failures.
type StatsCache interface {
	Get(ctx context.Context) (*Stats, bool)
	Set(ctx context.Context, stats *Stats)
	Invalidate(ctx context.Context)
}

// Stats computes the snapshot with one count per status plus a total,
// issued concurrently against the store.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	start := time.Now()

	if s.statsCache != nil {
		if cached, ok := s.statsCache.Get(ctx); ok {
			return cached, nil
		}
	}

	var stats Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.reports.CountAll(gctx)
		stats.Total = n
		return err
	})
	for _, pair := range []struct {
		status models.Status
		dst    *int
	}{
		{models.StatusPending, &stats.Pending},
		{models.StatusInvestigating, &stats.Investigating},
		{models.StatusResolved, &stats.Resolved},
	} {
		g.Go(func() error {
			n, err := s.reports.CountByStatus(gctx, pair.status)
			*pair.dst = n
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, wrapStoreErr(err)
	}

	if s.statsCache != nil {
		s.statsCache.Set(ctx, &stats)
	}
	if s.metrics != nil {
		s.metrics.ObserveStats(start)
	}
	return &stats, nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.statsCache == nil {
		return
	}
	s.statsCache.Invalidate(ctx)
}
