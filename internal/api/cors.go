package api

import (
	"fmt"
	"net/http"
	"strings"
)

var corsMethods = strings.Join([]string{http.MethodGet, http.MethodPost}, ",")

// corsMiddleware lets requests without an Origin through untouched. Browser
// requests from an origin outside the allowlist are rejected before they get
// anywhere near a handler.
func (a *api) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !a.origins.Allows(origin) {
			a.errorResponse(w, r, http.StatusForbidden, fmt.Sprintf("Origin %s not allowed by CORS", origin))
			return
		}

		h := w.Header()
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Origin", origin)

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", corsMethods)
			if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				h.Set("Access-Control-Allow-Headers", reqHeaders)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
