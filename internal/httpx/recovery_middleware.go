package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

const msgInternalError = "Terjadi kesalahan pada server"

// RecoveryMiddleware answers a panicking request with a failure envelope
// unless the handler already started the response.
func RecoveryMiddleware(status StatusFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Printf("panic recovered: request_id=%s error=%v stack=%s", RequestIDFrom(r), err, string(debug.Stack()))

					var wroteHeader bool
					if rw, ok := w.(*responseWriter); ok {
						wroteHeader = rw.wroteHeader()
					}

					if !wroteHeader {
						JSONError(w, status(http.StatusInternalServerError), msgInternalError)
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
