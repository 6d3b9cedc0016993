package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/socialchef/sous/internal/config"
	apperrors "github.com/socialchef/sous/internal/errors"
)

type contextKey string

const UserIDKey contextKey = "userID"

// AuthMiddleware validates HS256 bearer tokens issued for this service.
// Without cfg.APIJWTSecret it passes every request through unchanged.
func AuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.APIJWTSecret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Missing Authorization header", "MISSING_AUTH_HEADER")
				return
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				unauthorized(w, "Invalid Authorization header format", "INVALID_AUTH_HEADER")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.APIJWTSecret), nil
			}, jwt.WithIssuer(cfg.ServiceName), jwt.WithExpirationRequired())

			if err != nil || !token.Valid {
				unauthorized(w, "Invalid token", "INVALID_TOKEN")
				return
			}

			userID, err := token.Claims.GetSubject()
			if err != nil || userID == "" {
				unauthorized(w, "Missing sub claim", "MISSING_SUBJECT")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the user ID from request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

func unauthorized(w http.ResponseWriter, message, code string) {
	appErr := apperrors.NewUnauthorizedError("Unauthorized: "+message, code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(appErr)
}
