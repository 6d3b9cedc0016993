package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	SessionCookieName            = "sous_session"
	SessionIDKey      contextKey = "sessionID"
)

// Session makes sure every browser carries a session cookie and puts its id on the context.
// The id keys the one-flow-at-a-time guard.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(SessionCookieName); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   r.TLS != nil,
			})
		}
		ctx := context.WithValue(r.Context(), SessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts the session ID from request context
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}

// FlowKey picks the key that serialises recipe flows: the authenticated user when
// present, else the browser session.
func FlowKey(ctx context.Context) string {
	if userID, ok := GetUserID(ctx); ok && userID != "" {
		return "user:" + userID
	}
	if id, ok := GetSessionID(ctx); ok && id != "" {
		return "session:" + id
	}
	return "anonymous"
}
