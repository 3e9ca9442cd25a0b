package web

// errors.go provides unified error response handling for the web layer.
// Errors are logged with full detail server-side and returned to
// clients as JSON with a stable code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pagegrid/pagegrid/internal/logging"
	"github.com/pagegrid/pagegrid/internal/store"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError maps a store error to an HTTP status and writes the
// JSON response, logging the technical error with the request ID.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error(), Code: code})
}

// classify maps known error kinds to status codes.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrUnsupportedFormat):
		return http.StatusNotImplemented, "unsupported_format"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// respondErrorMessage writes a JSON error with an explicit status, for
// request-shape problems that never reach the store.
func respondErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: "bad_request"})
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing to do but log.
		slog.Error("json encode error", "error", err)
	}
}
