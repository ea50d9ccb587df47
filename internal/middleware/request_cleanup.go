package middleware

import (
	"io"
	"net/http"
)

// maxDrainBytes caps how much of an unread workout or profile payload is
// discarded. Larger leftovers are dropped with the connection instead.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest discards whatever body the handler left unread and
// closes it, so the keep-alive connection can serve the next request.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
