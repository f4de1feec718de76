package formhttp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/forms"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

var (
	ErrUnknownSession  = errors.New("formhttp: unknown session")
	ErrBadRequest      = errors.New("formhttp: malformed request body")
	ErrSecretTooShort  = errors.New("formhttp: cookie secret must be at least 32 characters")
	errInvalidVisitor  = errors.New("formhttp: invalid visitor cookie")
	errMissingVisitor  = errors.New("formhttp: visitor not resolved")
	errSessionCapacity = errors.New("formhttp: session capacity must be positive")
)

// ErrorDetail is the JSON error body.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error ErrorDetail `json:"error"`
}

// statusOf maps adapter and domain errors to HTTP status codes.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, forms.ErrUnknownForm):
		return http.StatusNotFound, "unknown_form"
	case errors.Is(err, ErrUnknownSession):
		return http.StatusNotFound, "unknown_session"
	case errors.Is(err, form.ErrUnknownField):
		return http.StatusNotFound, "unknown_field"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, form.ErrSubmissionRejected):
		return http.StatusUnprocessableEntity, "submission_rejected"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError renders err as JSON. Server errors are logged and their details
// hidden from the client.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	msg := err.Error()

	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Error(err),
		)
		msg = http.StatusText(status)
	} else {
		s.log.DebugContext(r.Context(), "request rejected",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			logger.Error(err),
		)
	}

	writeJSON(w, status, errorResponse{Error: ErrorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
