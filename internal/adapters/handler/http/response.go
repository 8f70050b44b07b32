package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"go.opentelemetry.io/otel/trace"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors to status codes. Anything unknown is an
// infrastructure failure and its details stay in the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"trace_id", trace.SpanContextFromContext(r.Context()).TraceID().String(),
			"error", err,
		)
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrElectionNotFound),
		errors.Is(err, domain.ErrVoterNotFound),
		errors.Is(err, domain.ErrCandidateNotFound),
		errors.Is(err, domain.ErrPartyNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrElectionClosed),
		errors.Is(err, domain.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCandidate),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrPartyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func uuidParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
