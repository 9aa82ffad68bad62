package rest

import (
	"encoding/json"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies read by handlers.
const maxBodyBytes = 1 << 20

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Fields map[string]string `json:"fields,omitempty"`
	Error  string            `json:"error"`
}

func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
