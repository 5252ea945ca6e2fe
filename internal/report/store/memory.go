package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"appguard/internal/report/models"
	"appguard/pkg/platform/sentinel"
)

// InMemory keeps reports in a mutex-guarded map. It backs development mode
// and handler/service tests; Postgres carries production.
type InMemory struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*memoryEntry
	nextSeq uint64
}

// memoryEntry pairs a report with its insertion sequence so listing can
// break SubmittedAt ties most-recently-inserted first.
type memoryEntry struct {
	report models.Report
	seq    uint64
}

func NewInMemory() *InMemory {
	return &InMemory{reports: make(map[uuid.UUID]*memoryEntry)}
}

func (s *InMemory) Insert(_ context.Context, report *models.Report) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	stored := *report
	stored.ID = id
	s.nextSeq++
	s.reports[id] = &memoryEntry{report: stored, seq: s.nextSeq}
	return id, nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.reports[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := entry.report
	return &clone, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(*models.Report) bool { return true }), nil
}

func (s *InMemory) ListBySubmitter(_ context.Context, identity string) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(r *models.Report) bool { return r.SubmitterIdentity == identity }), nil
}

func (s *InMemory) ListByStatus(_ context.Context, status models.Status) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(r *models.Report) bool { return r.Status == status }), nil
}

func (s *InMemory) ListByThreatLevel(_ context.Context, level string) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(r *models.Report) bool { return r.ThreatLevel == level }), nil
}

func (s *InMemory) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports), nil
}

func (s *InMemory) CountByStatus(_ context.Context, status models.Status) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, entry := range s.reports {
		if entry.report.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *InMemory) Update(_ context.Context, id uuid.UUID, mutate func(*models.Report) error) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.reports[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	// Mutate a working copy so a failed mutator leaves the record untouched.
	working := entry.report
	if err := mutate(&working); err != nil {
		return nil, err
	}
	entry.report = working

	clone := working
	return &clone, nil
}

// snapshot copies matching reports sorted by SubmittedAt descending, ties
// broken by insertion sequence descending. Callers hold at least the read lock.
func (s *InMemory) snapshot(match func(*models.Report) bool) []*models.Report {
	entries := make([]*memoryEntry, 0, len(s.reports))
	for _, entry := range s.reports {
		if match(&entry.report) {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.report.SubmittedAt.Equal(b.report.SubmittedAt) {
			return a.report.SubmittedAt.After(b.report.SubmittedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*models.Report, len(entries))
	for i, entry := range entries {
		clone := entry.report
		out[i] = &clone
	}
	return out
}
