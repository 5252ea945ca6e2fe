package identity

import (
	"log/slog"
	"time"

	"appguard/internal/identity/handler"
	"appguard/internal/identity/service"
	"appguard/internal/identity/store"
)

// Service exposes account lifecycle and credential exchange.
type Service = service.Service

// Handler wires HTTP endpoints to the identity service.
type Handler = handler.Handler

// NewService constructs the identity service with required dependencies.
func NewService(users store.Store, tokens service.TokenIssuer, tokenTTL time.Duration, opts ...service.Option) *Service {
	return service.New(users, tokens, tokenTTL, opts...)
}

// NewHandler constructs an HTTP handler for the auth routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
