package httpx

import "net/http"

// Text writes a plain-text response body with the given status code.
func Text(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(message))
}

// TextError writes a plain-text failure message. Callers are expected to
// have logged any underlying error already; the body never carries stack
// traces or internal detail beyond the message itself.
func TextError(w http.ResponseWriter, statusCode int, message string) {
	Text(w, statusCode, message)
}
