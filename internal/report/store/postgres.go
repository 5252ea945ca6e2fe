package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"appguard/internal/report/models"
	"appguard/pkg/platform/sentinel"
)

// Postgres persists reports in PostgreSQL via database/sql.
//
// A bigserial seq column records insertion order so listing can break
// SubmittedAt ties most-recently-inserted first, matching the in-memory
// store.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the reports table when it does not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reports (
			id                  UUID PRIMARY KEY,
			seq                 BIGSERIAL,
			suspicious_app_name TEXT NOT NULL,
			victim_name         TEXT NOT NULL,
			contact_info        TEXT NOT NULL,
			download_source     TEXT NOT NULL,
			threat_level        TEXT NOT NULL,
			description         TEXT NOT NULL,
			evidence_file_name  TEXT NOT NULL DEFAULT '',
			status              TEXT NOT NULL,
			submitted_at        TIMESTAMPTZ NOT NULL,
			submitter_identity  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS reports_submitter_idx ON reports (submitter_identity);
		CREATE INDEX IF NOT EXISTS reports_status_idx ON reports (status);
		CREATE INDEX IF NOT EXISTS reports_threat_idx ON reports (threat_level);
	`)
	if err != nil {
		return fmt.Errorf("ensure reports schema: %w", err)
	}
	return nil
}

const reportColumns = `id, suspicious_app_name, victim_name, contact_info, download_source,
	threat_level, description, evidence_file_name, status, submitted_at, submitter_identity`

func (s *Postgres) Insert(ctx context.Context, report *models.Report) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, suspicious_app_name, victim_name, contact_info, download_source,
			threat_level, description, evidence_file_name, status, submitted_at, submitter_identity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, report.SuspiciousAppName, report.VictimName, report.ContactInfo, report.DownloadSource,
		report.ThreatLevel, report.Description, report.EvidenceFileName, string(report.Status),
		report.SubmittedAt, report.SubmitterIdentity,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert report: %w", wrapUnavailable(err))
	}
	return id, nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find report: %w", wrapUnavailable(err))
	}
	return report, nil
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.Report, error) {
	return s.list(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY submitted_at DESC, seq DESC`)
}

func (s *Postgres) ListBySubmitter(ctx context.Context, identity string) ([]*models.Report, error) {
	return s.list(ctx, `SELECT `+reportColumns+` FROM reports WHERE submitter_identity = $1
		ORDER BY submitted_at DESC, seq DESC`, identity)
}

func (s *Postgres) ListByStatus(ctx context.Context, status models.Status) ([]*models.Report, error) {
	return s.list(ctx, `SELECT `+reportColumns+` FROM reports WHERE status = $1
		ORDER BY submitted_at DESC, seq DESC`, string(status))
}

func (s *Postgres) ListByThreatLevel(ctx context.Context, level string) ([]*models.Report, error) {
	return s.list(ctx, `SELECT `+reportColumns+` FROM reports WHERE threat_level = $1
		ORDER BY submitted_at DESC, seq DESC`, level)
}

func (s *Postgres) CountAll(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM reports`)
}

func (s *Postgres) CountByStatus(ctx context.Context, status models.Status) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM reports WHERE status = $1`, string(status))
}

// Update locks the row FOR UPDATE, applies mutate, and persists the mutable
// columns in the same transaction.
func (s *Postgres) Update(ctx context.Context, id uuid.UUID, mutate func(*models.Report) error) (*models.Report, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", wrapUnavailable(err))
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1 FOR UPDATE`, id)
	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock report: %w", wrapUnavailable(err))
	}

	if err := mutate(report); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE reports SET status = $2, evidence_file_name = $3 WHERE id = $1`,
		id, string(report.Status), report.EvidenceFileName)
	if err != nil {
		return nil, fmt.Errorf("update report: %w", wrapUnavailable(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", wrapUnavailable(err))
	}
	return report, nil
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]*models.Report, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", wrapUnavailable(err))
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", wrapUnavailable(err))
	}
	return reports, nil
}

func (s *Postgres) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports: %w", wrapUnavailable(err))
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*models.Report, error) {
	var r models.Report
	var status string
	err := row.Scan(&r.ID, &r.SuspiciousAppName, &r.VictimName, &r.ContactInfo, &r.DownloadSource,
		&r.ThreatLevel, &r.Description, &r.EvidenceFileName, &status, &r.SubmittedAt, &r.SubmitterIdentity)
	if err != nil {
		return nil, err
	}
	r.Status = models.Status(status)
	return &r, nil
}

// wrapUnavailable tags driver/connection failures with the unavailable
// sentinel so services can surface them as transient.
func wrapUnavailable(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return err
}
