package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminToken gates admin endpoints behind a shared secret. The token is read
// from X-Admin-Token or from a bearer Authorization header and compared in
// constant time. An empty configured secret disables the gate entirely: every
// request is rejected rather than silently allowed through.
func AdminToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "admin access disabled", http.StatusUnauthorized)
				return
			}
			token := requestAdminToken(r)
			if token == "" {
				http.Error(w, "missing admin token", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				http.Error(w, "invalid admin token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestAdminToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("X-Admin-Token")); t != "" {
		return t
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
