package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/parlakisik/buildex-matching/internal/model"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps err onto a status code and JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status >= 500 {
		slog.ErrorContext(r.Context(), "request_failed",
			"path", r.URL.Path,
			"code", code,
			"request_id", GetRequestID(r.Context()),
			"error", err,
		)
		if status == http.StatusInternalServerError {
			msg = "An internal error occurred"
		}
	}
	writeErrorBody(w, r, status, code, msg)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, model.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, model.ErrClaimNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, model.ErrPersistence):
		return http.StatusBadGateway, "persistence_failed"
	case errors.Is(err, model.ErrUpstream):
		return http.StatusBadGateway, "upstream_unavailable"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "timeout"
	}
	return http.StatusInternalServerError, "internal_error"
}

func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   message,
		RequestID: GetRequestID(r.Context()),
	}})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
