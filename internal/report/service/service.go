// Package service owns the report lifecycle: creation, role-agnostic query
// dispatch, the status state machine and the stats snapshot. Authorization
// happens upstream in the access boundary; by the time a call lands here it
// is already permitted.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	reportmetrics "appguard/internal/report/metrics"
	"appguard/internal/report/models"
	"appguard/internal/report/store"
	dErrors "appguard/pkg/domain-errors"
	"appguard/pkg/platform/sentinel"
	"appguard/pkg/requestcontext"
)

// Service mediates between the submission surface and the report store.
type Service struct {
	reports    store.Store
	logger     *slog.Logger
	metrics    *reportmetrics.Metrics
	statsCache StatsCache
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *reportmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithStatsCache enables read-through caching of the stats snapshot. The
// cache TTL bounds staleness; spec-wise this sits inside the transient
// inconsistency window already granted to concurrent writers.
func WithStatsCache(cache StatsCache) Option {
	return func(s *Service) { s.statsCache = cache }
}

// New constructs a Service.
func New(reports store.Store, opts ...Option) *Service {
	s := &Service{reports: reports, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateReportInput carries validated-at-the-boundary submission fields.
// Field-level validation still happens in models.NewReport so every path
// into the store enforces the same invariants.
type CreateReportInput struct {
	SuspiciousAppName string
	VictimName        string
	ContactInfo       string
	DownloadSource    string
	ThreatLevel       string
	Description       string
	EvidenceFileName  string
}

// CreateReport validates the input and persists a new pending report for
// the submitting citizen.
func (s *Service) CreateReport(ctx context.Context, in CreateReportInput, submitterIdentity string) (*models.Report, error) {
	start := time.Now()

	report, err := models.NewReport(
		strings.TrimSpace(in.SuspiciousAppName),
		strings.TrimSpace(in.VictimName),
		strings.TrimSpace(in.ContactInfo),
		strings.TrimSpace(in.DownloadSource),
		strings.TrimSpace(in.ThreatLevel),
		strings.TrimSpace(in.Description),
		strings.TrimSpace(in.EvidenceFileName),
		submitterIdentity,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}

	id, err := s.reports.Insert(ctx, report)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	report.ID = id

	s.logger.InfoContext(ctx, "report created",
		"report_id", id,
		"threat_level", report.ThreatLevel,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementReportsSubmitted()
		s.metrics.ObserveCreate(start)
	}
	s.invalidateStats(ctx)

	return report, nil
}

// GetReport retrieves a single report by ID.
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return report, nil
}

// ListAllReports returns every report, newest first.
func (s *Service) ListAllReports(ctx context.Context) ([]*models.Report, error) {
	reports, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return reports, nil
}

// ListBySubmitter returns the reports created by one identity, newest first.
func (s *Service) ListBySubmitter(ctx context.Context, identity string) ([]*models.Report, error) {
	if identity == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "no resolved identity")
	}
	reports, err := s.reports.ListBySubmitter(ctx, identity)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return reports, nil
}

// ListByStatus returns reports in the given triage state.
func (s *Service) ListByStatus(ctx context.Context, raw string) ([]*models.Report, error) {
	status, err := models.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.ListByStatus(ctx, status)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return reports, nil
}

// ListByThreatLevel returns reports carrying the given severity tag. The
// tag is opaque: no validation beyond non-emptiness.
func (s *Service) ListByThreatLevel(ctx context.Context, level string) ([]*models.Report, error) {
	if strings.TrimSpace(level) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "threatLevel is required")
	}
	reports, err := s.reports.ListByThreatLevel(ctx, level)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return reports, nil
}

// ChangeStatus moves a report to a new triage state. Any member of the
// closed set may follow any other; only membership is enforced.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*models.Report, error) {
	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	updated, err := s.reports.Update(ctx, id, func(r *models.Report) error {
		r.Status = status
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	s.logger.InfoContext(ctx, "report status changed",
		"report_id", id,
		"status", string(status),
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementStatusChanged()
	}
	s.invalidateStats(ctx)

	return updated, nil
}

// wrapStoreErr translates store sentinels into coded domain errors. Unknown
// failures surface as unavailable: callers may retry, and no storage detail
// reaches the client.
func wrapStoreErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "report not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "report store unavailable")
	default:
		var de *dErrors.Error
		if errors.As(err, &de) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "report store unavailable")
	}
}
