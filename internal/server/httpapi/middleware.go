package httpapi

import (
	"context"
	"net/http"

	"github.com/sitenexus/sitenexus/internal/server/auth"
)

// tokenHeader is the custom header the clients send the session token in.
// The original API used a bare "token" header rather than the standard
// bearer scheme; existing clients rely on it.
const tokenHeader = "token"

type ctxKey string

const userIDKey ctxKey = "userID"

// requireSession rejects requests without a valid session token and attaches
// the token's user id to the request context.
func (s *HTTPServer) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(tokenHeader)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "access denied")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, auth.PurposeSession, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
