package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"editionapi/internal/authflow"
	"editionapi/internal/clock"
	"editionapi/internal/edition"
	"editionapi/internal/platform/eventbrite"
	"editionapi/internal/render"
	"editionapi/internal/session"
)

func testRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	flow := authflow.NewService("k", "s",
		"https://provider.example/oauth/authorize",
		"https://provider.example/oauth/token",
		"http://localhost:8080/return/")
	authHandler := authflow.NewHTTPHandler(flow, session.NewMemoryStore(time.Minute))

	gateway := eventbrite.NewClient("http://localhost:0")
	editionHandler := edition.NewHTTPHandler(edition.NewAssembler(gateway), renderer, clock.NewSystem())

	return newRouter(authHandler, editionHandler)
}

func TestRouting(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/favicon.ico", http.StatusGone},
		{http.MethodPost, "/validate_config/", http.StatusOK},
		{http.MethodGet, "/configure/", http.StatusBadRequest},
		{http.MethodGet, "/return/", http.StatusInternalServerError},
		{http.MethodGet, "/edition/", http.StatusUnauthorized},
		{http.MethodGet, "/sample/", http.StatusOK},
		{http.MethodGet, "/validate_config/", http.StatusMethodNotAllowed},
		{http.MethodGet, "/no-such-route", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			if w.Code != tt.status {
				t.Fatalf("%s %s: got status %d, want %d", tt.method, tt.target, w.Code, tt.status)
			}
		})
	}
}
