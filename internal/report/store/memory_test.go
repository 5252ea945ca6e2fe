package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"appguard/internal/report/models"
	"appguard/pkg/platform/sentinel"
)

type ReportStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *ReportStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestReportStoreSuite(t *testing.T) {
	suite.Run(t, new(ReportStoreSuite))
}

func (s *ReportStoreSuite) newReport(submitter, threatLevel string, submittedAt time.Time) *models.Report {
	r, err := models.NewReport(
		"FakeBank Pro", "Jane Roe", "jane@example.com",
		"http://apk.example.com/fakebank.apk", threatLevel,
		"Asks for card PIN on launch", "", submitter, submittedAt,
	)
	s.Require().NoError(err)
	return r
}

// TestInsertAndLookup verifies ID assignment and retrieval by ID.
func (s *ReportStoreSuite) TestInsertAndLookup() {
	s.Run("insert assigns fresh unique IDs", func() {
		seen := make(map[uuid.UUID]bool)
		for i := 0; i < 10; i++ {
			id, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now))
			s.Require().NoError(err)
			s.False(seen[id], "ID reused")
			seen[id] = true
		}
	})

	s.Run("finds inserted report by ID", func() {
		report := s.newReport("alice", "high", s.now)
		id, err := s.store.Insert(s.ctx, report)
		s.Require().NoError(err)

		found, err := s.store.FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(id, found.ID)
		s.Equal(report.SuspiciousAppName, found.SuspiciousAppName)
		s.Equal(models.StatusPending, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("insert does not alias the caller's struct", func() {
		report := s.newReport("alice", "high", s.now)
		id, err := s.store.Insert(s.ctx, report)
		s.Require().NoError(err)

		report.Description = "mutated after insert"
		found, err := s.store.FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal("Asks for card PIN on launch", found.Description)
	})
}

// TestListOrdering verifies newest-first ordering with insertion-order tie breaks.
func (s *ReportStoreSuite) TestListOrdering() {
	s.Run("orders by submittedAt descending", func() {
		older, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now.Add(-time.Hour)))
		s.Require().NoError(err)
		newer, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now))
		s.Require().NoError(err)

		all, err := s.store.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(all, 2)
		s.Equal(newer, all[0].ID)
		s.Equal(older, all[1].ID)
	})

	s.Run("breaks timestamp ties most-recently-inserted first", func() {
		s.SetupTest()
		first, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now))
		s.Require().NoError(err)
		second, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now))
		s.Require().NoError(err)

		all, err := s.store.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(all, 2)
		s.Equal(second, all[0].ID)
		s.Equal(first, all[1].ID)
	})
}

// TestFilteredListing verifies submitter, status and threat level filters.
func (s *ReportStoreSuite) TestFilteredListing() {
	aliceID, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now))
	s.Require().NoError(err)
	_, err = s.store.Insert(s.ctx, s.newReport("bob", "low", s.now.Add(time.Minute)))
	s.Require().NoError(err)

	s.Run("by submitter returns only that submitter's reports", func() {
		mine, err := s.store.ListBySubmitter(s.ctx, "alice")
		s.Require().NoError(err)
		s.Require().Len(mine, 1)
		s.Equal(aliceID, mine[0].ID)

		none, err := s.store.ListBySubmitter(s.ctx, "carol")
		s.Require().NoError(err)
		s.Empty(none)
	})

	s.Run("by threat level", func() {
		high, err := s.store.ListByThreatLevel(s.ctx, "high")
		s.Require().NoError(err)
		s.Require().Len(high, 1)
		s.Equal(aliceID, high[0].ID)
	})

	s.Run("by status", func() {
		pending, err := s.store.ListByStatus(s.ctx, models.StatusPending)
		s.Require().NoError(err)
		s.Len(pending, 2)

		resolved, err := s.store.ListByStatus(s.ctx, models.StatusResolved)
		s.Require().NoError(err)
		s.Empty(resolved)
	})
}

// TestCounts verifies aggregate counters.
func (s *ReportStoreSuite) TestCounts() {
	for i := 0; i < 3; i++ {
		_, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now))
		s.Require().NoError(err)
	}

	total, err := s.store.CountAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, total)

	pending, err := s.store.CountByStatus(s.ctx, models.StatusPending)
	s.Require().NoError(err)
	s.Equal(3, pending)

	resolved, err := s.store.CountByStatus(s.ctx, models.StatusResolved)
	s.Require().NoError(err)
	s.Equal(0, resolved)
}

// TestUpdate verifies atomic mutation semantics.
func (s *ReportStoreSuite) TestUpdate() {
	s.Run("persists status change and leaves other fields untouched", func() {
		id, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now))
		s.Require().NoError(err)
		before, err := s.store.FindByID(s.ctx, id)
		s.Require().NoError(err)

		updated, err := s.store.Update(s.ctx, id, func(r *models.Report) error {
			r.Status = models.StatusInvestigating
			return nil
		})
		s.Require().NoError(err)
		s.Equal(models.StatusInvestigating, updated.Status)

		after, err := s.store.FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(models.StatusInvestigating, after.Status)
		s.Equal(before.SuspiciousAppName, after.SuspiciousAppName)
		s.Equal(before.SubmittedAt, after.SubmittedAt)
		s.Equal(before.SubmitterIdentity, after.SubmitterIdentity)
	})

	s.Run("failed mutator leaves record untouched", func() {
		id, err := s.store.Insert(s.ctx, s.newReport("alice", "high", s.now))
		s.Require().NoError(err)

		boom := func(r *models.Report) error {
			r.Status = models.StatusResolved
			return context.Canceled
		}
		_, err = s.store.Update(s.ctx, id, boom)
		s.Require().Error(err)

		found, err := s.store.FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.Update(s.ctx, uuid.New(), func(r *models.Report) error { return nil })
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
