package report

import (
	"log/slog"

	"appguard/internal/report/handler"
	"appguard/internal/report/service"
	"appguard/internal/report/store"
)

// Service exposes report submission, triage, and query orchestration.
type Service = service.Service

// Handler wires HTTP endpoints to the report service.
type Handler = handler.Handler

// NewService constructs the report service with required dependencies.
func NewService(reports store.Store, opts ...service.Option) *Service {
	return service.New(reports, opts...)
}

// NewHandler constructs an HTTP handler for the role-partitioned report routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
