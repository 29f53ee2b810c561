package authflow

import (
	"log"
	"net/http"
	"net/url"

	"editionapi/internal/httpx"
	"editionapi/internal/session"
)

const sessionCookie = "editionapi_session"

type HTTPHandler struct {
	service  *Service
	sessions session.Store
}

func NewHTTPHandler(service *Service, sessions session.Store) *HTTPHandler {
	return &HTTPHandler{
		service:  service,
		sessions: sessions,
	}
}

// Configure handles GET /configure/: remember where to send the client
// after authorization, then redirect to the provider's authorize URL.
func (h *HTTPHandler) Configure(w http.ResponseWriter, r *http.Request) {
	returnURL := r.URL.Query().Get("return_url")
	if returnURL == "" {
		httpx.TextError(w, http.StatusBadRequest, "No return_url parameter was provided")
		return
	}

	sess, err := h.currentSession(r)
	if err != nil {
		sess, err = h.sessions.Create(r.Context())
		if err != nil {
			log.Printf("creating session failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
			httpx.TextError(w, http.StatusInternalServerError, "An internal error occurred")
			return
		}
	}

	sess.ReturnURL = returnURL
	sess.ErrorURL = r.URL.Query().Get("error_url")
	if err := h.sessions.Put(r.Context(), sess); err != nil {
		log.Printf("storing session failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.TextError(w, http.StatusInternalServerError, "An internal error occurred")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.service.AuthorizeURL(sess.ID), http.StatusFound)
}

// Return handles GET /return/, the provider's callback. The exchanged
// token rides back to the stored return URL as a query parameter; the
// session has done its job by then and is dropped.
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		httpx.TextError(w, http.StatusInternalServerError, "No code was returned by Eventbrite")
		return
	}

	accessToken, err := h.service.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("token exchange failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.TextError(w, http.StatusUnauthorized, "Something went wrong when trying to authenticate with Eventbrite.")
		return
	}

	var returnURL string
	if sess, err := h.currentSession(r); err == nil {
		returnURL = sess.ReturnURL
		_ = h.sessions.Delete(r.Context(), sess.ID)
	}

	http.Redirect(w, r, returnURL+"?config[access_token]="+url.QueryEscape(accessToken), http.StatusFound)
}

func (h *HTTPHandler) currentSession(r *http.Request) (session.Session, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return session.Session{}, err
	}
	return h.sessions.Get(r.Context(), c.Value)
}
