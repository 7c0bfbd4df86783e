// Health probe for the standalone server.

package server

import (
	"net/http"
	"time"

	"github.com/getmockd/stubservice/pkg/httputil"
)

// HealthPath is the liveness probe route.
const HealthPath = "/__stubservice/health"

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    s.Uptime(),
	})
}
