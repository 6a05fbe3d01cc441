package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to write JSON", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]any{
		"error":   http.StatusText(status),
		"message": msg,
	})
}

// WriteInternalError answers 500. The error text reaches the client only when
// expose is set (dev); otherwise the body carries a generic message.
func WriteInternalError(w http.ResponseWriter, err error, expose bool) {
	msg := "internal server error"
	if expose && err != nil {
		msg = err.Error()
	}
	WriteError(w, http.StatusInternalServerError, msg)
}
