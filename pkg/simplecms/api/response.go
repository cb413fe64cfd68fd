package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: false, Error: message})
}

// respondServiceError maps the domain error taxonomy onto HTTP statuses.
// Validation and conflict reasons are passed through so authors can act on
// them; everything else gets a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, simplecms.ErrContentNotFound):
		respondError(w, r, http.StatusNotFound, "Content not found")
	case errors.Is(err, simplecms.ErrValidation):
		respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, simplecms.ErrSlugConflict):
		respondError(w, r, http.StatusConflict, "Slug already in use")
	case errors.Is(err, simplecms.ErrUnauthorized):
		respondError(w, r, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, simplecms.ErrStoreUnavailable):
		slog.Error("store unavailable", "error", err)
		respondError(w, r, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		slog.Error("unexpected error", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
