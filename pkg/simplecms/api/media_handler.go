package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// maxUploadBytes caps featured-image uploads at 10 MB.
const maxUploadBytes = 10 << 20

// MediaHandler serves featured-image uploads and downloads against the
// configured blob store.
type MediaHandler struct {
	store simplecms.BlobStore
}

// NewMediaHandler creates a media handler backed by the given blob store.
func NewMediaHandler(store simplecms.BlobStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Routes returns the router for authenticated media uploads.
func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upload)
	return r
}

// PublicRoutes returns the router that serves stored objects. Backends
// without native URLs (memory, filesystem without a prefix) are proxied
// through here.
func (h *MediaHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{objectKey}", h.Download)
	return r
}

type uploadResponse struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
}

// Upload handles POST /api/media. The file arrives as the "file" part of a
// multipart form; the stored key is a fresh UUID plus the original extension.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	objectKey := uuid.New().String() + ext

	err = h.store.UploadWithParams(r.Context(), file, simplecms.UploadParams{
		ObjectKey: objectKey,
		MimeType:  mimeType,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Upload failed")
		return
	}

	url, err := h.store.URL(r.Context(), objectKey)
	if err != nil {
		// Backend has no native URLs; serve through the proxy route.
		url = fmt.Sprintf("/api/public/media/%s", objectKey)
	}

	respond(w, r, http.StatusCreated, uploadResponse{ObjectKey: objectKey, URL: url})
}

// Download handles GET /api/public/media/{objectKey}
func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	objectKey := chi.URLParam(r, "objectKey")

	meta, err := h.store.GetObjectMeta(r.Context(), objectKey)
	if err != nil {
		respondError(w, r, http.StatusNotFound, "Object not found")
		return
	}

	reader, err := h.store.Download(r.Context(), objectKey)
	if err != nil {
		respondError(w, r, http.StatusNotFound, "Object not found")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", meta.Size))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}
