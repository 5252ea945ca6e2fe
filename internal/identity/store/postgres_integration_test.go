//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"appguard/internal/access"
	"appguard/internal/identity/models"
	"appguard/internal/identity/store"
	"appguard/pkg/platform/sentinel"
	"appguard/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "users"))
}

func newTestUser(username, email string) *models.User {
	u, _ := models.NewUser(username, "Test User", email, "not-a-real-hash", access.RoleCitizen)
	return u
}

func (s *PostgresUserStoreSuite) TestInsertAndFind() {
	ctx := context.Background()

	id, err := s.store.Insert(ctx, newTestUser("alice", "alice@example.com"))
	s.Require().NoError(err)

	byName, err := s.store.FindByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(id, byName.ID)
	s.Equal(access.RoleCitizen, byName.Role)

	byEmail, err := s.store.FindByEmail(ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(id, byEmail.ID)

	_, err = s.store.FindByUsername(ctx, "nobody")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresUserStoreSuite) TestUniqueConstraints() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, newTestUser("alice", "alice@example.com"))
	s.Require().NoError(err)

	_, err = s.store.Insert(ctx, newTestUser("alice", "other@example.com"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	_, err = s.store.Insert(ctx, newTestUser("alice2", "alice@example.com"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}
