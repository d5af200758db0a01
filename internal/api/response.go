package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
)

type errorBody struct {
	Error   string            `json:"error"`
	Code    domainerrors.Code `json:"code"`
	Details any               `json:"details,omitempty"`
	Retry   bool              `json:"retryable,omitempty"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes an error body with an explicit code.
func jsonError(w http.ResponseWriter, status int, code domainerrors.Code, message string) {
	jsonResponse(w, status, errorBody{Error: message, Code: code})
}

// writeError maps err onto a status and error body. Errors that are not
// domain errors are logged and reported as INTERNAL without their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domainerrors.Error
	if !domainerrors.As(err, &de) {
		requestLogger(r.Context()).Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, domainerrors.CodeInternal, "internal error")
		return
	}

	status := de.HTTPStatus()
	if status >= http.StatusInternalServerError {
		requestLogger(r.Context()).Error("request failed", "code", de.Code, "error", err)
	}
	jsonResponse(w, status, errorBody{
		Error:   de.Message,
		Code:    de.Code,
		Details: de.Details,
		Retry:   de.Code.Retryable(),
	})
}

// decodeJSON decodes a JSON request body into target. Malformed bodies are
// VALIDATION errors.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return domainerrors.Validation("invalid request body").WithCause(err)
	}
	return nil
}

// pathID parses the {name} path value as a positive row id.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.Validation("invalid " + name)
	}
	return id, nil
}
