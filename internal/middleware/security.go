package middleware

import (
	"net/http"

	"github.com/petpawtner/petpawtner/internal/ctxkeys"
)

// SecurityHeaders sets standard hardening headers on every response.
// The CSP allows images from the configured S3 endpoint since avatars and
// post images are served from blob storage.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		imgSrc := "'self' data: https:"
		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.S3Endpoint != "" {
			imgSrc = "'self' data: " + cfg.S3Endpoint
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; img-src "+imgSrc+"; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'")

		next.ServeHTTP(w, r)
	})
}
