package middleware

import (
	"context"
	"net/http"

	"github.com/commhendrix/academic-portfolio/internal/auth"
	"github.com/commhendrix/academic-portfolio/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// UserResolver re-fetches the full user record for a session's user id.
type UserResolver interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// UserFrom returns the authenticated user threaded through the request
// context by RequireAuth, or nil.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// WithUser returns a context carrying the given user. Exposed for tests
// that exercise handlers without the HTTP middleware chain.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// RequireAuth validates the signed session cookie, resolves the session
// to a user row, and injects the user into the request context. It never
// creates a session as a side effect.
func RequireAuth(cookies *auth.CookieCodec, sessions auth.SessionStore, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := cookies.Decode(r)
			if sid == "" {
				http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
				return
			}

			userID, err := sessions.Get(r.Context(), sid)
			if err != nil || userID == 0 {
				http.Error(w, `{"error":"session expired"}`, http.StatusUnauthorized)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil || user == nil {
				http.Error(w, `{"error":"session expired"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin gates a route to the administrator. Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFrom(r.Context())
		if u == nil || u.Role != models.RoleAdmin {
			http.Error(w, `{"error":"admin access required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
