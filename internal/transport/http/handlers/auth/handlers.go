package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfai/internal/domain/users"
	"perfai/internal/transport/http/api"
	"perfai/internal/transport/http/shared"
)

type Handler struct {
	Users *users.Service
}

func NewHandler(usersService *users.Service) *Handler {
	return &Handler{Users: usersService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w) {
		return
	}

	result, err := h.Users.Login(r.Context(), payload.Username, payload.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Login failed")
		return
	}

	api.Success(w, result, "Login successful")
}
