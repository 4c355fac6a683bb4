package httpapi

import (
	"net/http"
	"strings"
)

const msgUnauthorized = "غير مصرح بالوصول"

// AuthMiddleware returns a wrapper that requires the shared admin token on
// every request, read from the auth_token cookie or a Bearer header. An empty
// configured token disables the check.
func AuthMiddleware(token string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if token == "" {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			if requestToken(r) != token {
				writeJSON(w, http.StatusUnauthorized, Fail(msgUnauthorized))
				return
			}
			next(w, r)
		}
	}
}

func requestToken(r *http.Request) string {
	if c, err := r.Cookie("auth_token"); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
