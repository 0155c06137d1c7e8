package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/minhvu-dev/crm-backend/internal/token"
	"github.com/minhvu-dev/crm-backend/internal/utils"
)

type ctxKey string

const ctxUserIDKey ctxKey = "user_id"

// UserIDFrom returns the authenticated user ID placed in ctx by RequireAuth.
func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxUserIDKey).(int64)
	return id, ok
}

// RequireAuth decodes the bearer token from the Authorization header and
// pushes the user ID into the request context. Requests without a valid,
// unexpired token are rejected with 401.
func RequireAuth(codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				utils.Fail(w, http.StatusUnauthorized, "missing token")
				return
			}

			claims, err := codec.Decode(raw)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, token.ErrExpired) {
					msg = "token expired"
				}
				utils.Fail(w, http.StatusUnauthorized, msg)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
