package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shophub/internal/domain"
	"shophub/internal/identity"

	"go.uber.org/zap"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// SessionToken returns the session token from the cookie, falling back to an
// Authorization: Bearer header. Empty means no credentials were sent.
func SessionToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

// SessionMiddleware resolves the session token through the identity provider
// and stores the user in the request context
func SessionMiddleware(provider identity.Provider, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r, cookieName)
			if token == "" {
				logger.Debug("Missing session token")
				RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := provider.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrInvalidSession) {
					logger.Debug("Session rejected", zap.Error(err))
				} else {
					logger.Error("Failed to validate session", zap.Error(err))
				}
				RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			logger.Debug("User authenticated", zap.String("user_id", user.ID))

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from request context
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok && user != nil
}

// GetUserID extracts user ID from request context
func GetUserID(ctx context.Context) (string, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return "", false
	}
	return user.ID, true
}
