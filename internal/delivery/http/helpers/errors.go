package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"codedcode/internal/domain"
)

// Messages shared by every resource.
const (
	MsgValidationFailed = "Validation errors"
	MsgUnavailable      = "Database connection error. Please try again later."
	MsgConflict         = "Resource already exists"
	MsgDuplicateEmail   = "An application with this email already exists"
	MsgInternal         = "Internal server error"
)

// ErrorResponder maps service errors onto the HTTP error taxonomy.
type ErrorResponder struct {
	Logger *slog.Logger
	// ExposeDetail adds the raw error text to 500 responses. Leave it off in production.
	ExposeDetail bool
}

// ErrorMessages holds the resource specific texts for 404 and 500 responses.
type ErrorMessages struct {
	NotFound string
	Failure  string
}

// Write classifies err and writes the matching response. Unclassified and storage failures are logged.
func (e *ErrorResponder) Write(w http.ResponseWriter, r *http.Request, err error, msgs ErrorMessages) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteAPIError(w, http.StatusBadRequest, &APIError{Code: ErrCodeValidation, Message: MsgValidationFailed, Fields: verr.Fields})
	case errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, MsgDuplicateEmail)
	case errors.Is(err, domain.ErrConflict):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, MsgConflict)
	case errors.Is(err, domain.ErrNotFound):
		msg := msgs.NotFound
		if msg == "" {
			msg = "Not found"
		}
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, msg)
	case errors.Is(err, domain.ErrUnavailable):
		e.log(r, err)
		WriteJSONError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, MsgUnavailable)
	default:
		e.log(r, err)
		apiErr := &APIError{Code: ErrCodeInternalError, Message: msgs.Failure}
		if apiErr.Message == "" {
			apiErr.Message = MsgInternal
		}
		if e.ExposeDetail {
			apiErr.Detail = err.Error()
		}
		WriteAPIError(w, http.StatusInternalServerError, apiErr)
	}
}

func (e *ErrorResponder) log(r *http.Request, err error) {
	if e.Logger == nil {
		return
	}
	e.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
