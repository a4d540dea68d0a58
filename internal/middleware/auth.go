package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/zsigidavid/notekeeper/pkg/api/response"
	"github.com/zsigidavid/notekeeper/pkg/auth"
)

type key string

const userKey key = "user"

var (
	ErrNoAuthHeader      = errors.New("missing authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header")
)

// Authenticate resolves the requesting user from the Authorization header.
// It is a pure function of the request and the token manager's secret;
// handlers never parse tokens themselves.
func Authenticate(r *http.Request, tokens *auth.TokenManager) (int, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return 0, ErrNoAuthHeader
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, ErrInvalidAuthHeader
	}
	return tokens.Verify(parts[1])
}

// JWT guards a route subtree. Absent header, malformed header, bad signature
// and expiry all produce the same 401 body, so the client cannot tell the
// failure modes apart and treats each as "log in again".
func JWT(tokens *auth.TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := Authenticate(r, tokens)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("please authenticate"))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) int {
	if uid, ok := ctx.Value(userKey).(int); ok {
		return uid
	}
	return 0
}
