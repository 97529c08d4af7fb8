package main

import (
	"net/http"

	"golang.org/x/time/rate"
)

// limitWrites answers 429 to mutating requests beyond server.write_rate.
// Reads are never limited.
func (a *app) limitWrites(next http.Handler) http.Handler {
	if a.cfg.Server.WriteRate <= 0 {
		return next
	}
	lim := rate.NewLimiter(rate.Limit(a.cfg.Server.WriteRate), max(a.cfg.Server.WriteBurst, 1))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if !lim.Allow() {
				a.log.Warn("Write rate exceeded", "method", r.Method, "path", r.URL.Path)
				a.writeError(w, http.StatusTooManyRequests, "too many write requests")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
