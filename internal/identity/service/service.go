// Package service owns account lifecycle and credential exchange. Password
// verification and token issuance happen here; handlers only shape the wire.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"appguard/internal/access"
	"appguard/internal/identity/models"
	"appguard/internal/identity/secrets"
	"appguard/internal/identity/store"
	dErrors "appguard/pkg/domain-errors"
	"appguard/pkg/platform/sentinel"
	"appguard/pkg/requestcontext"
)

// TokenIssuer mints signed access tokens for authenticated callers.
type TokenIssuer interface {
	GenerateAccessToken(identity, role string, expiresIn time.Duration) (string, error)
}

// Service mediates between the auth surface and the account store.
type Service struct {
	users    store.Store
	tokens   TokenIssuer
	tokenTTL time.Duration
	logger   *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs a Service. tokenTTL bounds the lifetime of issued tokens.
func New(users store.Store, tokens TokenIssuer, tokenTTL time.Duration, opts ...Option) *Service {
	s := &Service{users: users, tokens: tokens, tokenTTL: tokenTTL, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginResult carries the issued token alongside the authenticated profile.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *models.User
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "user store unavailable")
	}

	if err := secrets.Verify(password, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not verify credentials")
	}

	token, err := s.tokens.GenerateAccessToken(user.Username, string(user.Role), s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token")
	}

	s.logger.InfoContext(ctx, "user logged in",
		"username", user.Username,
		"role", string(user.Role),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &LoginResult{Token: token, ExpiresIn: s.tokenTTL, User: user}, nil
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Role     string
}

// Register creates a new account after uniqueness checks on username and
// email. The reported conflict names whichever check failed first.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	emailAddr := strings.TrimSpace(in.Email)

	role, ok := access.ParseRole(strings.ToUpper(strings.TrimSpace(in.Role)))
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown role %q", in.Role)
	}

	hash, err := secrets.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user, err := models.NewUser(username, strings.TrimSpace(in.Name), emailAddr, hash, role)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "username already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "user store unavailable")
	}
	if _, err := s.users.FindByEmail(ctx, emailAddr); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "email already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "user store unavailable")
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		// Lost the race between check and insert.
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "username or email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "user store unavailable")
	}
	user.ID = id

	s.logger.InfoContext(ctx, "user registered",
		"username", user.Username,
		"role", string(user.Role),
		"request_id", requestcontext.RequestID(ctx),
	)
	return user, nil
}

// Profile returns the account behind an authenticated identity.
func (s *Service) Profile(ctx context.Context, identity string) (*models.User, error) {
	if identity == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "no resolved identity")
	}
	user, err := s.users.FindByUsername(ctx, identity)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "user store unavailable")
	}
	return user, nil
}
