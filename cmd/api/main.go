package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"editionapi/internal/authflow"
	"editionapi/internal/clock"
	"editionapi/internal/config"
	"editionapi/internal/edition"
	"editionapi/internal/httpx"
	"editionapi/internal/platform/eventbrite"
	"editionapi/internal/render"
	"editionapi/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.toml"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("parsing templates: %v", err)
	}

	sessions := session.NewMemoryStore(cfg.SessionTTL())
	flow := authflow.NewService(
		cfg.Eventbrite.ApplicationKey,
		cfg.Eventbrite.ClientSecret,
		cfg.Eventbrite.AuthorizeURL,
		cfg.Eventbrite.TokenURL,
		cfg.PublicBaseURL+"/return/",
	)
	authHandler := authflow.NewHTTPHandler(flow, sessions)

	gateway := eventbrite.NewClient(cfg.Eventbrite.APIBaseURL)
	editionHandler := edition.NewHTTPHandler(edition.NewAssembler(gateway), renderer, clock.NewSystem())

	router := newRouter(authHandler, editionHandler)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	var handler http.Handler = router
	handler = rateLimit.Middleware(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func newRouter(authHandler *authflow.HTTPHandler, editionHandler *edition.HTTPHandler) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	router.HandleFunc("POST /validate_config/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.HandleFunc("GET /configure/", authHandler.Configure)
	router.HandleFunc("GET /return/", authHandler.Return)
	router.HandleFunc("GET /edition/", editionHandler.Edition)
	router.HandleFunc("GET /sample/", editionHandler.Sample)

	return router
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
