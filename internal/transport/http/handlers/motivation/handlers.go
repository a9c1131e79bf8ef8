package motivationhandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perfai/internal/domain/audit"
	"perfai/internal/domain/motivation"
	"perfai/internal/requestctx"
	"perfai/internal/transport/http/api"
	"perfai/internal/transport/http/middleware"
)

type Handler struct {
	Service *motivation.Service
	Audit   *audit.Recorder
}

func NewHandler(service *motivation.Service, recorder *audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Post("/motivation/generate", h.handleGenerate)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Service.GenerateDaily(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Gagal generate motivasi")
		return
	}

	if h.Audit != nil {
		user, _ := middleware.GetUser(r.Context())
		if auditErr := h.Audit.Record(r.Context(), user.UserID, audit.ActionGenerateMotivation, "motivation", time.Now().UTC().Format("2006-01-02"), requestctx.GetRequestID(r.Context()), nil); auditErr != nil {
			slog.Warn("audit record failed", "action", audit.ActionGenerateMotivation, "err", auditErr)
		}
	}

	api.Success(w, entry, "Motivasi harian berhasil digenerate")
}
