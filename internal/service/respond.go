// Package service implements the HTTP services of the watchlist API.
// Each service owns a chi sub-router mounted by cmd/server.
//
// Convention: success bodies are JSON; error bodies are plain text with the
// status codes documented on each handler.
package service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// decodeJSON decodes the request body into v. An empty body is not an
// error; missing fields are checked by the handlers.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeMessage sends a {"message": ...} envelope with the given status code.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// internalError logs err and sends a generic 500 without leaking details.
func internalError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
