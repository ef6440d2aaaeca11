package middleware

import (
	"net/http"

	"github.com/2beens/fitcompare/pkg"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"ua":     r.Header.Get("User-Agent"),
			}
			if ip, err := pkg.ReadUserIP(r); err == nil {
				fields["ip"] = ip
			}
			if r.ContentLength > 0 {
				fields["content_length"] = r.ContentLength
			}
			log.WithFields(fields).Trace(" ====> request")
			next.ServeHTTP(w, r)
		})
	}
}
