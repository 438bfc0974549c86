package controller

import (
	"net/http"
	"strings"
)

// extensionSchemes are the origins browsers give to extension pages.
var extensionSchemes = []string{"chrome-extension://", "moz-extension://", "safari-web-extension://"} //nolint: gochecknoglobals

// WithCORS returns a middleware that allows cross-origin calls and
// short-circuits OPTIONS preflight requests with 204 No Content. Extension
// origins are echoed back so the browser accepts the response; any other
// origin gets a wildcard.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowedOrigin(r.Header.Get("Origin")))
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Request-Id")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		h.Set("Access-Control-Expose-Headers", "X-Request-Id")

		// handle preflight requests quickly
		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func allowedOrigin(origin string) string {
	for _, scheme := range extensionSchemes {
		if strings.HasPrefix(origin, scheme) {
			return origin
		}
	}

	return "*"
}
