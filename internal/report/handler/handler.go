// Package handler exposes the submission/query surface over HTTP. No
// business rules live here: each route pairs an access gate with one report
// service call and translates the result onto the wire.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"appguard/internal/access"
	"appguard/internal/report/service"
	dErrors "appguard/pkg/domain-errors"
	"appguard/pkg/platform/httputil"
	"appguard/pkg/requestcontext"
)

// Handler wires HTTP endpoints to the report service.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the role-partitioned routes. Every route passes the access
// boundary before its handler runs.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/citizen", func(r chi.Router) {
		r.With(access.Require(access.OpSubmitReport, h.logger)).
			Post("/reports", h.SubmitReport)
		r.With(access.Require(access.OpListOwnReports, h.logger)).
			Get("/reports", h.ListMyReports)
	})

	r.Route("/api/investigator", func(r chi.Router) {
		r.With(access.Require(access.OpListAllReports, h.logger)).
			Get("/reports", h.ListAllReports)
		r.With(access.Require(access.OpGetReport, h.logger)).
			Get("/reports/{id}", h.GetReport)
		r.With(access.Require(access.OpUpdateStatus, h.logger)).
			Put("/reports/{id}/status", h.UpdateStatus)
		r.With(access.Require(access.OpStats, h.logger)).
			Get("/stats", h.Stats)
		r.With(access.Require(access.OpListByStatus, h.logger)).
			Get("/reports/status/{status}", h.ListByStatus)
		r.With(access.Require(access.OpListByThreatLevel, h.logger)).
			Get("/reports/threat/{threatLevel}", h.ListByThreatLevel)
	})
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.svc.CreateReport(r.Context(), req.Input(), requestcontext.Identity(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Report submitted successfully",
		"reportId": report.ID,
	})
}

func (h *Handler) ListMyReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.ListBySubmitter(r.Context(), requestcontext.Identity(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) ListAllReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.ListAllReports(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := reportID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	report, err := h.svc.GetReport(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := reportID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	req.Normalize()

	if _, err := h.svc.ChangeStatus(r.Context(), id, req.Status); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Report status updated successfully",
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.ListByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) ListByThreatLevel(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.ListByThreatLevel(r.Context(), chi.URLParam(r, "threatLevel"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

func reportID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid report id")
	}
	return id, nil
}
