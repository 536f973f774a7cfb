package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"llmapi/internal/inference"
	"llmapi/pkg/types"
)

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

// writeStatus writes a {status, message} payload used by model operations.
func writeStatus(w http.ResponseWriter, code int, status, msg string) {
	writeJSON(w, code, types.StatusResponse{Status: status, Message: msg})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errValidation), errors.Is(err, inference.ErrEmptyModelName):
		return http.StatusBadRequest
	case inference.IsNoActiveModel(err):
		return http.StatusConflict
	case inference.IsRunnerFailure(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
