package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"salary-dashboard/internal/app"
)

// APIError is the body of every non-2xx JSON response.
type APIError struct {
	Error apiErrorBody `json:"error"`
}

type apiErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON encodes v before touching w, so an unencodable value (a NaN
// mean, say) becomes a logged 500 instead of a 200 with a truncated body.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		LoggerFrom(r.Context()).Error("encode response", zap.Int("status", status), zap.Error(err))
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(newAPIError(r, "encode_failed", "could not encode response"))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		LoggerFrom(r.Context()).Debug("write response", zap.Error(err))
	}
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, r, status, newAPIError(r, code, message))
}

func newAPIError(r *http.Request, code, message string) APIError {
	return APIError{Error: apiErrorBody{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFrom(r.Context()),
	}}
}

// writeAppError maps errors coming out of app.App and app.Session. A table
// that never loaded is a 503; anything else is logged and reported as a 500.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrNotLoaded) {
		WriteError(w, r, http.StatusServiceUnavailable, "not_loaded", "employee data is not loaded")
		return
	}
	LoggerFrom(r.Context()).Error("dashboard", zap.Error(err))
	WriteError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
}
