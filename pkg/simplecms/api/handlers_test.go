package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/api"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
	memorystorage "github.com/tendant/simple-cms/pkg/simplecms/storage/memory"
)

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func newTestRouter(t *testing.T) chi.Router {
	svc, err := simplecms.New(simplecms.WithRepository(memory.New()))
	require.NoError(t, err)

	contentHandler := api.NewContentHandler(svc)
	publicHandler := api.NewPublicHandler(svc)
	mediaHandler := api.NewMediaHandler(memorystorage.New())

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(testTokenAuth))
			r.Use(jwtauth.Authenticator)
			r.Use(api.IdentityMiddleware)

			r.Mount("/content", contentHandler.Routes())
			r.Mount("/admin/content", contentHandler.AdminRoutes())
			r.Mount("/media", mediaHandler.Routes())
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/content/{slug}", publicHandler.Resolve)
			r.Get("/recent", publicHandler.Recent)
			r.Mount("/media", mediaHandler.PublicRoutes())
		})
	})
	return r
}

func tokenFor(t *testing.T, id, name, role string) string {
	claims := map[string]interface{}{
		"sub":   id,
		"name":  name,
		"email": id + "@example.com",
	}
	if role != "" {
		claims["role"] = role
	}
	_, tokenString, err := testTokenAuth.Encode(claims)
	require.NoError(t, err)
	return tokenString
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doRequest(t *testing.T, router chi.Router, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func createContent(t *testing.T, router chi.Router, token string, body map[string]interface{}) simplecms.Content {
	rec, env := doRequest(t, router, http.MethodPost, "/api/content", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var content simplecms.Content
	require.NoError(t, json.Unmarshal(env.Data, &content))
	return content
}

func TestContentEndpoints(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := tokenFor(t, "user-alice", "Alice", "")
	bobToken := tokenFor(t, "user-bob", "Bob", "")
	adminToken := tokenFor(t, "user-admin", "Admin", "admin")

	t.Run("requires a token", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/content", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create and fetch", func(t *testing.T) {
		created := createContent(t, router, aliceToken, map[string]interface{}{
			"title": "Hello, World!",
			"body":  "First post.",
		})
		assert.Equal(t, "hello-world", created.Slug)
		assert.Equal(t, simplecms.ContentStatusDraft, created.Status)

		rec, env := doRequest(t, router, http.MethodGet, "/api/content/"+created.ID.String(), aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got simplecms.Content
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("validation errors surface as 400", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodPost, "/api/content", aliceToken, map[string]interface{}{
			"title": "",
			"body":  "No title.",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("slug conflict surfaces as 409", func(t *testing.T) {
		createContent(t, router, aliceToken, map[string]interface{}{
			"title": "Unique Title",
			"body":  "b",
		})
		rec, _ := doRequest(t, router, http.MethodPost, "/api/content", bobToken, map[string]interface{}{
			"title": "Unique Title",
			"body":  "b",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("update with partial body", func(t *testing.T) {
		created := createContent(t, router, aliceToken, map[string]interface{}{
			"title": "Patch Me",
			"body":  "Original body.",
		})

		rec, env := doRequest(t, router, http.MethodPut, "/api/content/"+created.ID.String(), aliceToken, map[string]interface{}{
			"status": "published",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated simplecms.Content
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, simplecms.ContentStatusPublished, updated.Status)
		assert.Equal(t, "Original body.", updated.Body)
		assert.NotNil(t, updated.PublishedAt)
	})

	t.Run("other users cannot touch foreign content", func(t *testing.T) {
		created := createContent(t, router, aliceToken, map[string]interface{}{
			"title": "Private Post",
			"body":  "b",
		})

		rec, _ := doRequest(t, router, http.MethodGet, "/api/content/"+created.ID.String(), bobToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec, _ = doRequest(t, router, http.MethodDelete, "/api/content/"+created.ID.String(), bobToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("listing is scoped to the caller", func(t *testing.T) {
		router := newTestRouter(t)
		createContent(t, router, aliceToken, map[string]interface{}{"title": "Alice One", "body": "b"})
		createContent(t, router, aliceToken, map[string]interface{}{"title": "Alice Two", "body": "b", "status": "published"})
		createContent(t, router, bobToken, map[string]interface{}{"title": "Bob One", "body": "b"})

		rec, env := doRequest(t, router, http.MethodGet, "/api/content", aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var contents []simplecms.Content
		require.NoError(t, json.Unmarshal(env.Data, &contents))
		assert.Len(t, contents, 2)

		rec, env = doRequest(t, router, http.MethodGet, "/api/content?status=published", aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(env.Data, &contents))
		assert.Len(t, contents, 1)
	})

	t.Run("admin listing", func(t *testing.T) {
		router := newTestRouter(t)
		createContent(t, router, aliceToken, map[string]interface{}{"title": "A", "body": "b"})
		createContent(t, router, bobToken, map[string]interface{}{"title": "B", "body": "b"})

		rec, env := doRequest(t, router, http.MethodGet, "/api/admin/content", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var contents []simplecms.Content
		require.NoError(t, json.Unmarshal(env.Data, &contents))
		assert.Len(t, contents, 2)

		rec, _ = doRequest(t, router, http.MethodGet, "/api/admin/content", aliceToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stats", func(t *testing.T) {
		router := newTestRouter(t)
		createContent(t, router, aliceToken, map[string]interface{}{"title": "S One", "body": "b"})
		createContent(t, router, aliceToken, map[string]interface{}{"title": "S Two", "body": "b", "status": "published"})

		rec, env := doRequest(t, router, http.MethodGet, "/api/content/stats", aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var stats simplecms.ContentStats
		require.NoError(t, json.Unmarshal(env.Data, &stats))
		assert.Equal(t, 2, stats.Total)
		assert.Equal(t, 1, stats.Published)
		assert.Equal(t, 1, stats.Draft)
	})
}

func TestPublicEndpoints(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := tokenFor(t, "user-alice", "Alice", "")

	published := createContent(t, router, aliceToken, map[string]interface{}{
		"title":  "Public Post",
		"body":   "Read me.",
		"status": "published",
	})
	draft := createContent(t, router, aliceToken, map[string]interface{}{
		"title": "Secret Draft",
		"body":  "Do not read.",
	})

	t.Run("resolve published and count views", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/public/content/"+published.Slug, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got simplecms.Content
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, int64(1), got.Views)

		rec, env = doRequest(t, router, http.MethodGet, "/api/public/content/"+published.Slug, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, int64(2), got.Views)
	})

	t.Run("draft and unknown slugs both answer 404", func(t *testing.T) {
		for _, slug := range []string{draft.Slug, "no-such-slug"} {
			rec, env := doRequest(t, router, http.MethodGet, "/api/public/content/"+slug, "", nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Content not found", env.Error)
		}
	})

	t.Run("recent digest", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/public/recent", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var recent []simplecms.PublicContent
		require.NoError(t, json.Unmarshal(env.Data, &recent))
		require.Len(t, recent, 1)
		assert.Equal(t, "Alice", recent[0].AuthorName)
		assert.Equal(t, published.Slug, recent[0].Slug)
	})

	t.Run("invalid limit rejected", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/public/recent?limit=abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMediaEndpoints(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := tokenFor(t, "user-alice", "Alice", "")

	t.Run("upload and download", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", "cover.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/media", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+aliceToken)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

		var uploaded struct {
			ObjectKey string `json:"object_key"`
			URL       string `json:"url"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &uploaded))
		assert.NotEmpty(t, uploaded.ObjectKey)
		assert.Contains(t, uploaded.URL, uploaded.ObjectKey)

		getRec, _ := doRequest(t, router, http.MethodGet, "/api/public/media/"+uploaded.ObjectKey, "", nil)
		require.Equal(t, http.StatusOK, getRec.Code)
		assert.Equal(t, "png-bytes", getRec.Body.String())
	})

	t.Run("missing file part", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/media", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=none")
		req.Header.Set("Authorization", "Bearer "+aliceToken)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown object", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/public/media/missing.png", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
