// internal/middleware/security.go
//
// Response-header middleware for the admin API.
//
// Sets, on every response:
//
//   • Cache-Control           –  no-store, settings change on reload
//   • X-Content-Type-Options  –  MIME-sniffing defence
//   • X-Frame-Options         –  click-jacking defence
//   • Referrer-Policy         –  no Referer leaves the admin surface
//
// Notes
// -----
// • Headers are set *before* next.ServeHTTP; once a handler writes the
//   status line, later header changes are dropped.
// • Handlers may still override any of them.
// • Oxford commas, two spaces after periods.

package middleware

import "net/http"

// Security sets security and caching headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		cache = "no-store"
		nosn  = "nosniff"
		xfo   = "DENY"
		refer = "no-referrer"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", cache)
		h.Set("X-Content-Type-Options", nosn)
		h.Set("X-Frame-Options", xfo)
		h.Set("Referrer-Policy", refer)

		next.ServeHTTP(w, r)
	})
}
