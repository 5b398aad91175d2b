package middleware

import "net/http"

// MaxBodySize caps the request body at limit bytes. Requests that announce a
// larger Content-Length go straight to tooLarge without the body being read.
func MaxBodySize(limit int64, tooLarge http.Handler) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				tooLarge.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next(w, r)
		}
	}
}
