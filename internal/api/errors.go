package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xtding233/payout-engine/internal/contract"
	"github.com/xtding233/payout-engine/internal/preset"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps the engine and preset error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, preset.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, preset.ErrInvalidPreset):
		return http.StatusInternalServerError
	case errors.Is(err, errBadRequest),
		errors.Is(err, preset.ErrInvalidName),
		errors.Is(err, contract.ErrConstruction),
		errors.Is(err, contract.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, contract.ErrEvaluation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	} else {
		h.logger.Debug("request rejected", slog.String("path", r.URL.Path), slog.Int("status", status), slog.Any("error", err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
