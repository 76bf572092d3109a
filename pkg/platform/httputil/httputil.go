// Package httputil translates domain results and errors into HTTP responses.
// Handlers stay thin: decode, call the service, hand the outcome here.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "gatepass/pkg/domain-errors"
)

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeBadRequest:         http.StatusBadRequest,
	dErrors.CodeInvalidInput:       http.StatusBadRequest,
	dErrors.CodeUnauthorized:       http.StatusUnauthorized,
	dErrors.CodeForbidden:          http.StatusForbidden,
	dErrors.CodeNotFound:           http.StatusNotFound,
	dErrors.CodeConflict:           http.StatusConflict,
	dErrors.CodeUnavailable:        http.StatusServiceUnavailable,
	dErrors.CodeInvariantViolation: http.StatusConflict,
	dErrors.CodeInternal:           http.StatusInternalServerError,
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a coded domain error to its HTTP status. Internal errors
// omit the description so infrastructure detail never reaches clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body["error_description"] = de.Message()
		}
	}
	WriteJSON(w, status, body)
}

// DecodeAndPrepare decodes a JSON request body into T, writing a bad_request
// response and logging on failure. The bool result tells the handler whether
// to continue.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "malformed request body",
				"request_id", requestID,
				"path", r.URL.Path,
				"error", err,
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		var zero T
		return zero, false
	}
	return req, true
}
