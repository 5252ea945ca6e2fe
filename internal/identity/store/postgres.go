package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"appguard/internal/access"
	"appguard/internal/identity/models"
	"appguard/pkg/platform/sentinel"
)

// Postgres persists accounts in PostgreSQL via database/sql.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

const userColumns = `id, username, name, email, password_hash, role`

func (s *Postgres) Insert(ctx context.Context, user *models.User) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, user.Username, user.Name, user.Email, user.PasswordHash, string(user.Role),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return uuid.Nil, sentinel.ErrConflict
		}
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *Postgres) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.find(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.find(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *Postgres) find(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	var role string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Role = access.Role(role)
	return &u, nil
}
