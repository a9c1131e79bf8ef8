package chathandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"perfai/internal/domain/audit"
	"perfai/internal/domain/chat"
	"perfai/internal/requestctx"
	"perfai/internal/transport/http/api"
	"perfai/internal/transport/http/middleware"
	"perfai/internal/transport/http/shared"
)

const defaultHistoryLimit = 50

type Handler struct {
	Service *chat.Service
	Audit   *audit.Recorder
}

func NewHandler(service *chat.Service, recorder *audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Post("/chat", h.handleSend)
	r.With(middleware.RequireAuth).Get("/chat/history", h.handleHistory)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	v := shared.NewValidator()
	v.Required("message", payload.Message, "message must not be empty")
	if v.Reject(w) {
		return
	}

	result, err := h.Service.Send(r.Context(), user.UserID, payload.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		api.Fail(w, http.StatusBadRequest, "Pesan tidak boleh kosong")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Gagal memproses chat")
		return
	}

	if h.Audit != nil {
		if auditErr := h.Audit.Record(r.Context(), user.UserID, audit.ActionSendChat, "chat", strconv.FormatInt(user.UserID, 10), requestctx.GetRequestID(r.Context()), nil); auditErr != nil {
			slog.Warn("audit record failed", "action", audit.ActionSendChat, "err", auditErr)
		}
	}

	api.Success(w, result, "Chat berhasil")
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	history, err := h.Service.History(r.Context(), user.UserID, limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Gagal mengambil riwayat chat")
		return
	}

	api.Success(w, map[string]any{
		"history": history,
		"count":   len(history),
	}, "Riwayat chat berhasil diambil")
}
