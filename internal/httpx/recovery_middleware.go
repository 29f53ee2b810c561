package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware converts panics into a plain 500 so a single bad
// request cannot take the process down. The stack goes to the log only.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: request_id=%s error=%v stack=%s", RequestIDFrom(r), err, string(debug.Stack()))

				var wroteHeader bool
				if rw, ok := w.(*responseWriter); ok {
					wroteHeader = rw.wroteHeader()
				}
				if !wroteHeader {
					TextError(w, http.StatusInternalServerError, "An internal error occurred")
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}
