package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/fitcompare/internal/auth"
	"github.com/2beens/fitcompare/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a JSON 500 and counts it.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				fields := log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				}
				if user, ok := auth.UserFromContext(r.Context()); ok {
					fields["user_id"] = user.ID
				}
				log.WithFields(fields).Errorf("http: panic serving request: %v\n%s", recovered, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				writeJSONError(w, "Internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
