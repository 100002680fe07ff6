package httpadapter

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const apiKeyHeader = "X-API-Key"

// authMiddleware checks the shared API key. An empty configured key
// disables the check, which is the expected mode for local setups.
func (rt *Router) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rt.cfg.APIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		presented := strings.TrimSpace(r.Header.Get(apiKeyHeader))
		if presented != "" && subtle.ConstantTimeCompare([]byte(presented), []byte(rt.cfg.APIKey)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	})
}
