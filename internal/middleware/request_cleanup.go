package middleware

import (
	"io"
	"net/http"
)

// DrainAndCloseRequest reads what is left of the request body, at most
// maxDrainBytes, and closes it. Bodies larger than that (rejected uploads)
// are closed without reading, the connection is not reused then.
func DrainAndCloseRequest(maxDrainBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
