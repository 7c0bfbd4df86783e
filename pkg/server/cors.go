// CORS middleware for the standalone server.

package server

import (
	"net/http"
	"strings"

	"github.com/getmockd/stubservice/pkg/config"
)

// corsMiddleware adds the configured CORS headers to every response. It
// does not short-circuit preflight requests; OPTIONS falls through to the
// routes like any other method.
func corsMiddleware(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origin := cfg.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	methods := strings.Join(cfg.AllowMethods, ",")
	headers := strings.Join(cfg.AllowHeaders, ",")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			if methods != "" {
				h.Set("Access-Control-Allow-Methods", methods)
			}
			if headers != "" {
				h.Set("Access-Control-Allow-Headers", headers)
			}
			next.ServeHTTP(w, r)
		})
	}
}
