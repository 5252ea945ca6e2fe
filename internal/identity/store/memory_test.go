package store

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appguard/internal/access"
	"appguard/internal/identity/models"
	"appguard/internal/identity/secrets"
	"appguard/pkg/platform/sentinel"
)

func newUser(t *testing.T, username, email string) *models.User {
	t.Helper()
	user, err := models.NewUser(username, "Test User", email, "not-a-real-hash", access.RoleCitizen)
	require.NoError(t, err)
	return user
}

func TestInMemoryInsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	id, err := s.Insert(ctx, newUser(t, "alice", "alice@example.com"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	byName, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	byEmail, err := s.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	_, err = s.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	_, err := s.Insert(ctx, newUser(t, "alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = s.Insert(ctx, newUser(t, "alice", "other@example.com"))
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	_, err = s.Insert(ctx, newUser(t, "alice2", "alice@example.com"))
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestSeedDemoUsers(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	require.NoError(t, SeedDemoUsers(ctx, s, logger))

	citizen, err := s.FindByUsername(ctx, "citizen1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleCitizen, citizen.Role)
	assert.NoError(t, secrets.Verify("demo", citizen.PasswordHash))

	officer, err := s.FindByUsername(ctx, "officer1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleInvestigator, officer.Role)

	// Second run leaves the existing accounts untouched.
	require.NoError(t, SeedDemoUsers(ctx, s, logger))
	again, err := s.FindByUsername(ctx, "citizen1")
	require.NoError(t, err)
	assert.Equal(t, citizen.ID, again.ID)
}
