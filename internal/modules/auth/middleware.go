package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/user"
)

type contextKey struct{}

var userKey contextKey

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated user, or nil when the request
// did not pass the auth middleware.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(userKey).(*user.User)
	return u
}

// RequireAuth verifies the bearer access token and loads the caller's
// account into the request context. Capability flags are read from the
// identity store on every request so revocations take effect immediately.
func RequireAuth(issuer *TokenIssuer, users user.Repository, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const prefix = "Bearer "
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, prefix) {
				unauthorized(w, "Authentication credentials were not provided.")
				return
			}

			id, err := issuer.VerifyAccess(strings.TrimPrefix(header, prefix))
			if err != nil {
				unauthorized(w, "Given token not valid for any token type")
				return
			}

			u, err := users.GetUserByID(r.Context(), id)
			if err != nil {
				logger.Debugw("token user lookup failed", "err", err)
				unauthorized(w, "Given token not valid for any token type")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
