package middleware

import (
	"context"
	"net/http"
	"strings"

	"perfai/internal/auth"
	"perfai/internal/transport/http/api"
)

type contextKey string

const ctxKeyUser contextKey = "user"

// UserContext carries the authenticated caller's identity. EmployeeID is
// zero when the user has no linked employee record.
type UserContext struct {
	UserID     int64
	Username   string
	RoleID     int64
	EmployeeID int64
}

// Auth parses a bearer token when present and attaches the user context.
// Requests without a valid token proceed anonymously; route groups that
// need identity use RequireAuth.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, UserContext{
				UserID:     claims.UserID,
				Username:   claims.Username,
				RoleID:     claims.RoleID,
				EmployeeID: claims.EmployeeID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(UserContext)
	return user, ok
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireEmployee additionally demands a linked employee record; the
// performance endpoints are meaningless without one.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if user.EmployeeID == 0 {
			api.Fail(w, http.StatusForbidden, "User is not linked to an employee. Contact admin.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
