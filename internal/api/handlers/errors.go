package handlers

import (
	"errors"
	"net/http"

	"github.com/asbbic/membership/internal/services"
)

func (h *Handlers) logError(r *http.Request, err error) {
	h.factory.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
}

// errorResponse writes the uniform error envelope. Diagnostic detail for
// server faults only leaves the process in dev mode.
func (h *Handlers) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var apiErr *services.ApiError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
		message = apiErr.Message
	}

	body := envelope{
		"success": false,
		"message": message,
	}

	if status >= http.StatusInternalServerError {
		h.logError(r, err)
		if h.config.IsDev {
			body["error"] = err.Error()
		}
	}

	if werr := h.writeJSON(w, status, body); werr != nil {
		h.logError(r, werr)
	}
}

func (h *Handlers) validationErrorResponse(w http.ResponseWriter, r *http.Request, fields []ValidationError) {
	body := envelope{
		"success": false,
		"message": "Input validation failed",
		"errors":  fields,
	}
	if err := h.writeJSON(w, http.StatusBadRequest, body); err != nil {
		h.logError(r, err)
	}
}
