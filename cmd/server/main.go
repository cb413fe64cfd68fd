package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/api"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
)

// HTTPConfig holds the server-level tunables, separate from the service
// configuration handled by the config package.
type HTTPConfig struct {
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func main() {
	var httpCfg HTTPConfig
	if err := cleanenv.ReadEnv(&httpCfg); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	serverConfig, err := config.Load(config.WithEnv(""))
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	svc, err := serverConfig.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	store, err := serverConfig.BuildBlobStore()
	if err != nil {
		slog.Error("Failed to build blob store", "err", err)
		os.Exit(1)
	}

	server := NewHTTPServer(svc, store, serverConfig, httpCfg)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: server.Routes(),
	}

	go func() {
		slog.Info("Simple CMS server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"database", serverConfig.DatabaseType,
			"storage", serverConfig.Storage.Type)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

// HTTPServer wraps the simple-cms service for HTTP access
type HTTPServer struct {
	service   simplecms.Service
	store     simplecms.BlobStore
	config    *config.ServerConfig
	httpCfg   HTTPConfig
	tokenAuth *jwtauth.JWTAuth
}

// NewHTTPServer creates a new HTTP server wrapper
func NewHTTPServer(service simplecms.Service, store simplecms.BlobStore, serverConfig *config.ServerConfig, httpCfg HTTPConfig) *HTTPServer {
	return &HTTPServer{
		service:   service,
		store:     store,
		config:    serverConfig,
		httpCfg:   httpCfg,
		tokenAuth: jwtauth.New("HS256", []byte(serverConfig.JWTSecret), nil),
	}
}

// Routes sets up the HTTP routes
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(s.httpCfg.RequestTimeout))

	// CORS for development
	if s.config.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	r.Get("/health", s.handleHealth)

	contentHandler := api.NewContentHandler(s.service)
	publicHandler := api.NewPublicHandler(s.service)
	mediaHandler := api.NewMediaHandler(s.store)

	r.Route("/api", func(r chi.Router) {
		// Authenticated surface
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.tokenAuth))
			r.Use(jwtauth.Authenticator)
			r.Use(api.IdentityMiddleware)

			r.Mount("/content", contentHandler.Routes())
			r.Mount("/admin/content", contentHandler.AdminRoutes())
			r.Mount("/media", mediaHandler.Routes())
		})

		// Anonymous surface
		r.Route("/public", func(r chi.Router) {
			r.Get("/content/{slug}", publicHandler.Resolve)
			r.Get("/recent", publicHandler.Recent)
			r.Mount("/media", mediaHandler.PublicRoutes())
		})
	})

	return r
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "ok",
		"service": "simple-cms",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
