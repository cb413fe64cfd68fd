package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// ContentHandler serves the authenticated content management endpoints.
type ContentHandler struct {
	service simplecms.Service
}

// NewContentHandler creates a content handler backed by the given service.
func NewContentHandler(service simplecms.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

// Routes returns the router for authenticated content operations. The caller
// mounts it behind the JWT verification middleware.
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/stats", h.Stats)

	r.Route("/{contentID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})

	return r
}

// AdminRoutes returns the router for admin-only listings.
func (h *ContentHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListAll)
	return r
}

type createContentRequest struct {
	Title         string                 `json:"title"`
	Slug          string                 `json:"slug"`
	Body          string                 `json:"body"`
	Excerpt       string                 `json:"excerpt"`
	Kind          string                 `json:"type"`
	Status        string                 `json:"status"`
	FeaturedImage string                 `json:"featured_image"`
	Tags          []string               `json:"tags"`
	SEO           *simplecms.SEOMetadata `json:"seo"`
}

type updateContentRequest struct {
	Title         *string                `json:"title"`
	Slug          *string                `json:"slug"`
	Body          *string                `json:"body"`
	Excerpt       *string                `json:"excerpt"`
	Kind          *string                `json:"type"`
	Status        *string                `json:"status"`
	FeaturedImage *string                `json:"featured_image"`
	Tags          []string               `json:"tags"`
	SEO           *simplecms.SEOMetadata `json:"seo"`
}

// Create handles POST /api/content
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := h.service.CreateContent(r.Context(), simplecms.CreateContentRequest{
		Actor:         IdentityFromContext(r.Context()),
		Title:         req.Title,
		Slug:          req.Slug,
		Body:          req.Body,
		Excerpt:       req.Excerpt,
		Kind:          simplecms.ContentKind(req.Kind),
		Status:        simplecms.ContentStatus(req.Status),
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		SEO:           req.SEO,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, content)
}

// Get handles GET /api/content/{contentID}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "contentID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid content ID")
		return
	}

	content, err := h.service.GetContent(r.Context(), id, IdentityFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, content)
}

// Update handles PUT /api/content/{contentID}
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "contentID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid content ID")
		return
	}

	var req updateContentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := simplecms.UpdateContentRequest{
		ID:            id,
		Actor:         IdentityFromContext(r.Context()),
		Title:         req.Title,
		Slug:          req.Slug,
		Body:          req.Body,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		SEO:           req.SEO,
	}
	if req.Kind != nil {
		kind := simplecms.ContentKind(*req.Kind)
		update.Kind = &kind
	}
	if req.Status != nil {
		status := simplecms.ContentStatus(*req.Status)
		update.Status = &status
	}

	content, err := h.service.UpdateContent(r.Context(), update)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, content)
}

// Delete handles DELETE /api/content/{contentID}
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "contentID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid content ID")
		return
	}

	if err := h.service.DeleteContent(r.Context(), id, IdentityFromContext(r.Context())); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, map[string]string{"message": "Content deleted"})
}

// List handles GET /api/content with optional status and type filters. The
// listing is always scoped to the caller's own content.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	req := simplecms.ListContentRequest{Actor: IdentityFromContext(r.Context())}

	if s := r.URL.Query().Get("status"); s != "" {
		status := simplecms.ContentStatus(s)
		req.Status = &status
	}
	if k := r.URL.Query().Get("type"); k != "" {
		kind := simplecms.ContentKind(k)
		req.Kind = &kind
	}

	contents, err := h.service.ListContent(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, contents)
}

// ListAll handles GET /api/admin/content
func (h *ContentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.ListAllContent(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, contents)
}

// Stats handles GET /api/content/stats
func (h *ContentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.ContentStats(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, stats)
}
