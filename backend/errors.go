package backend

import (
	"errors"
	"net/http"

	"github.com/unihumboldt/blog/core"
)

const internalMessage = "Error interno del servidor"

type errorResponse struct {
	Error string `json:"error"`
}

// statusCode maps the core error kinds to HTTP status codes.
func statusCode(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation),
		errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *request, err error) {

	var code = statusCode(err)

	if code == http.StatusInternalServerError {
		s.Log.Error(r.Context(), "request failed", "request_id", requestID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.Log.Debug(r.Context(), "request rejected", "request_id", requestID(r.Context()), "status", code, "err", err)
	}

	writeJSON(w, code, errorResponse{Error: core.Message(err, internalMessage)})
}
