package edition

import (
	"errors"
	"log"
	"net/http"

	"editionapi/internal/clock"
	"editionapi/internal/httpx"
	"editionapi/internal/render"
)

type HTTPHandler struct {
	assembler *Assembler
	renderer  *render.Renderer
	clock     clock.Clock
}

func NewHTTPHandler(assembler *Assembler, renderer *render.Renderer, clk clock.Clock) *HTTPHandler {
	return &HTTPHandler{
		assembler: assembler,
		renderer:  renderer,
		clock:     clk,
	}
}

// Edition handles GET /edition/. The etag only varies with the access
// token and the calendar day, so it is computed up front and every outcome
// short of a failure carries it.
func (h *HTTPHandler) Edition(w http.ResponseWriter, r *http.Request) {
	accessToken := r.URL.Query().Get("access_token")
	if accessToken == "" {
		httpx.TextError(w, http.StatusUnauthorized, "No access_token received")
		return
	}
	localDeliveryTime := r.URL.Query().Get("local_delivery_time")

	etag := `"` + Validator(accessToken, h.clock.Now()) + `"`

	ed, err := h.assembler.Assemble(r.Context(), accessToken, localDeliveryTime)
	switch {
	case errors.Is(err, ErrNoContent):
		if notModified(w, r, etag) {
			return
		}
		w.Header().Set("Etag", etag)
		httpx.Text(w, http.StatusNoContent, "No tickets found.")
	case err != nil:
		log.Printf("edition assembly failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.TextError(w, http.StatusInternalServerError, "Something went wrong "+trimDetail(err))
	default:
		if notModified(w, r, etag) {
			return
		}
		w.Header().Set("Etag", etag)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.renderer.Publication(w, render.PublicationData{
			User:    ed.User,
			Events:  ed.Events,
			Tickets: ed.Tickets,
		}); err != nil {
			log.Printf("rendering edition failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		}
	}
}

// Sample handles GET /sample/, rendering the embedded fixtures so the
// layout can be previewed without authenticating.
func (h *HTTPHandler) Sample(w http.ResponseWriter, r *http.Request) {
	data, err := render.Sample()
	if err != nil {
		log.Printf("loading sample fixtures failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.TextError(w, http.StatusInternalServerError, "Something went wrong loading the sample data")
		return
	}

	etag := `"` + Validator("sample", h.clock.Now()) + `"`
	if notModified(w, r, etag) {
		return
	}
	w.Header().Set("Etag", etag)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Publication(w, data); err != nil {
		log.Printf("rendering sample failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	}
}

func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if r.Header.Get("If-None-Match") != etag {
		return false
	}
	w.Header().Set("Etag", etag)
	w.WriteHeader(http.StatusNotModified)
	return true
}

// trimDetail keeps the phase prefix of an assembly error ("fetching events
// for the user") and drops everything after the first colon, so upstream
// payloads never leak into response bodies.
func trimDetail(err error) string {
	msg := err.Error()
	for i := 0; i < len(msg); i++ {
		if msg[i] == ':' {
			return msg[:i]
		}
	}
	return msg
}
