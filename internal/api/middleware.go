package api

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader is echoed back so clients can correlate reports with logs.
const requestIDHeader = "X-Request-ID"

// requestIDMiddleware assigns every request an ID, honoring one supplied by
// a trusted proxy.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}
