package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape for every JSON endpoint.
type Envelope struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Data    any    `json:"data"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func WriteJSON(w http.ResponseWriter, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(payload.Code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, message string) {
	WriteJSON(w, Envelope{Message: message, Status: StatusSuccess, Code: http.StatusOK, Data: data})
}

func Fail(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, Envelope{Message: message, Status: StatusError, Code: code})
}

func FailWithDetails(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, Envelope{Message: message, Status: StatusError, Code: code, Data: data})
}
