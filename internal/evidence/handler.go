package evidence

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appguard/internal/access"
	dErrors "appguard/pkg/domain-errors"
	"appguard/pkg/platform/httputil"
)

// Handler exposes the evidence upload route.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.With(access.Require(access.OpUploadEvidence, h.logger)).
		Post("/api/citizen/upload", h.UploadEvidence)
}

func (h *Handler) UploadEvidence(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing file field"))
		return
	}
	defer file.Close()

	name, err := h.svc.Upload(r.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "File uploaded successfully",
		"fileName": name,
	})
}
