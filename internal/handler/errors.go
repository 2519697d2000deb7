package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tripdesk/backend/internal/api"
	"github.com/tripdesk/backend/internal/domain"
)

// respondServiceError maps a service-layer error onto the wire: 404 for a
// missing resource, 422 for a rule violation, 500 for everything else. The
// caller supplies the not-found message (e.g. "itinerary not found") because
// the handler is the layer that knows what was being looked up.
func respondServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, notFoundBody(notFoundMsg))
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		slog.Error("handler: internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, api.ErrorResponse{
			Error: api.ErrorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// badRequestBody returns an ErrorResponse for a request rejected before
// reaching the service layer (malformed body, unparseable id).
func badRequestBody(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: "bad_request", Message: message}}
}

// unwrapMessage strips the wrapping prefixes from a sentinel error chain,
// e.g. "service.ItineraryService.Create: validation error: title is required"
// becomes "title is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		msg = msg[i+len(marker):]
	}
	return msg
}
