package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-management-api/internal/auth"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// UserID returns the authenticated user id stored by Authenticate, or ""
// outside an authenticated request.
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

// Authenticate requires a valid bearer token and stores the user id in the
// request context.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var raw string
			if h := r.Header.Get("Authorization"); h != "" {
				// any other scheme (Basic, raw token) is rejected
				if !strings.HasPrefix(h, "Bearer ") {
					http.Error(w, "bad token", http.StatusUnauthorized)
					return
				}
				raw = strings.TrimPrefix(h, "Bearer ")
			} else if c, err := r.Cookie("access_token"); err == nil {
				// browser clients fall back to the access-token cookie
				raw = c.Value
			}
			if raw == "" {
				http.Error(w, "no token", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
