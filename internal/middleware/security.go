package middleware

import (
	"fmt"
	"net/http"
	"strings"
)

// cdnOrigin serves the Tailwind browser build used by the layout
const cdnOrigin = "https://cdn.jsdelivr.net"

// SecurityHeaders sets CSP and the usual hardening headers. Must run after
// NonceMiddleware.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scriptSrc := []string{"'self'", cdnOrigin}
		if nonce := GetNonce(r.Context()); nonce != "" {
			scriptSrc = append(scriptSrc, fmt.Sprintf("'nonce-%s'", nonce))
		}

		csp := strings.Join([]string{
			"default-src 'self'",
			"script-src " + strings.Join(scriptSrc, " "),
			// Tailwind's browser build injects <style> elements at runtime
			"style-src 'self' 'unsafe-inline'",
			"img-src 'self' data:",
			"form-action 'self'",
			"frame-ancestors 'none'",
			"base-uri 'self'",
			"object-src 'none'",
		}, "; ")

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
