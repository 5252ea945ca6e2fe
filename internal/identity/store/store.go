// Package store persists portal accounts.
package store

import (
	"context"

	"github.com/google/uuid"

	"appguard/internal/identity/models"
)

// Store is the account persistence boundary. Lookups return
// sentinel.ErrNotFound for unknown users; Insert returns sentinel.ErrConflict
// when the username or email is already taken.
type Store interface {
	Insert(ctx context.Context, user *models.User) (uuid.UUID, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
