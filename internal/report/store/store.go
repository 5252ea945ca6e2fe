// Package store persists reports. Implementations return sentinel errors
// (pkg/platform/sentinel); the service layer translates them into domain
// errors.
package store

import (
	"context"

	"github.com/google/uuid"

	"appguard/internal/report/models"
)

// Store is the durable keyed collection of reports.
//
// All list operations return point-in-time snapshots ordered by SubmittedAt
// descending, ties broken most-recently-inserted first. Update applies its
// mutator atomically: concurrent updates to the same report serialize, and a
// partially mutated record is never observable.
type Store interface {
	// Insert assigns a fresh unique ID, persists the report, and returns the ID.
	Insert(ctx context.Context, report *models.Report) (uuid.UUID, error)

	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListAll(ctx context.Context) ([]*models.Report, error)
	ListBySubmitter(ctx context.Context, identity string) ([]*models.Report, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Report, error)
	ListByThreatLevel(ctx context.Context, level string) ([]*models.Report, error)

	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.Status) (int, error)

	// Update runs mutate on the stored report while holding the record lock
	// and persists the result. Returns sentinel.ErrNotFound for unknown IDs;
	// a mutate error aborts the update untouched.
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Report) error) (*models.Report, error)
}
