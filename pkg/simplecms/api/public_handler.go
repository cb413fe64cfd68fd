package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// PublicHandler serves the anonymous read endpoints. Nothing here requires
// authentication and nothing here leaks unpublished state: a draft, an
// archived item and a slug that never existed all answer 404.
type PublicHandler struct {
	service simplecms.Service
}

// NewPublicHandler creates a public handler backed by the given service.
func NewPublicHandler(service simplecms.Service) *PublicHandler {
	return &PublicHandler{service: service}
}

// Routes returns the router for public content access.
func (h *PublicHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/content/{slug}", h.Resolve)
	r.Get("/recent", h.Recent)
	return r
}

// Resolve handles GET /api/public/content/{slug}. Each successful resolution
// counts one view.
func (h *PublicHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	content, err := h.service.ResolvePublished(r.Context(), slug)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, content)
}

// Recent handles GET /api/public/recent?limit=n
func (h *PublicHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	contents, err := h.service.ListRecentPublished(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, contents)
}
