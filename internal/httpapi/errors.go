package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/punchclock/internal/domain"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps a service error onto a status code and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoUserSelected):
		return http.StatusBadRequest, "no_user_selected"
	case errors.Is(err, domain.ErrInvalidBreakTime):
		return http.StatusBadRequest, "invalid_break_time"
	case errors.Is(err, domain.ErrInvalidTimestamp):
		return http.StatusBadRequest, "invalid_timestamp"
	case errors.Is(err, domain.ErrInvalidUser):
		return http.StatusBadRequest, "invalid_user"
	case errors.Is(err, domain.ErrDuplicateOpenSession):
		return http.StatusConflict, "duplicate_open_session"
	case errors.Is(err, domain.ErrAlreadyClosed):
		return http.StatusConflict, "already_closed"
	case errors.Is(err, domain.ErrNoOpenEntry):
		return http.StatusConflict, "no_open_entry"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrNothingToExport):
		return http.StatusNotFound, "nothing_to_export"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "unauthorized"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// handleServiceError writes the response for err. Backend details are
// logged, never returned.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status >= 500 {
		s.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		message = http.StatusText(status)
	}
	writeError(w, status, code, message)
}
