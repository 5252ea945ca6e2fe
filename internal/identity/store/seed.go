package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"appguard/internal/access"
	"appguard/internal/identity/models"
	"appguard/internal/identity/secrets"
	"appguard/pkg/platform/sentinel"
)

// SeedDemoUsers inserts the demo accounts used by local development and the
// frontend walkthrough. Existing accounts are left alone, so seeding is safe
// to run on every startup.
func SeedDemoUsers(ctx context.Context, users Store, logger *slog.Logger) error {
	demo := []struct {
		username, password, name, email string
		role                            access.Role
	}{
		{"citizen1", "demo", "Demo Citizen", "citizen1@portal.test", access.RoleCitizen},
		{"officer1", "demo", "Demo Officer", "officer1@portal.test", access.RoleInvestigator},
	}

	for _, d := range demo {
		hash, err := secrets.Hash(d.password)
		if err != nil {
			return fmt.Errorf("seed %s: %w", d.username, err)
		}
		user, err := models.NewUser(d.username, d.name, d.email, hash, d.role)
		if err != nil {
			return fmt.Errorf("seed %s: %w", d.username, err)
		}
		if _, err := users.Insert(ctx, user); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				continue
			}
			return fmt.Errorf("seed %s: %w", d.username, err)
		}
		logger.InfoContext(ctx, "seeded demo user", "username", d.username, "role", string(d.role))
	}
	return nil
}
