package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/socialchef/sous/internal/config"
)

func TestAuthMiddleware(t *testing.T) {
	secret := "test-secret"
	cfg := &config.Config{
		ServiceName:  "sous",
		APIJWTSecret: secret,
	}

	createToken := func(claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte(secret))
		return tokenString
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID string
	}{
		{
			name:           "Missing Authorization header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Authorization header format",
			authHeader:     "Bearer",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token format",
			authHeader:     "Bearer invalid-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired token",
			authHeader: "Bearer " + createToken(jwt.MapClaims{
				"sub": "user-123",
				"iss": "sous",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Missing expiry",
			authHeader: "Bearer " + createToken(jwt.MapClaims{
				"sub": "user-123",
				"iss": "sous",
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Invalid signature",
			authHeader: "Bearer " + func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"sub": "user-123",
					"iss": "sous",
					"exp": time.Now().Add(time.Hour).Unix(),
				})
				tokenString, _ := token.SignedString([]byte("wrong-secret"))
				return tokenString
			}(),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Invalid issuer",
			authHeader: "Bearer " + createToken(jwt.MapClaims{
				"sub": "user-123",
				"iss": "someone-else",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Missing sub",
			authHeader: "Bearer " + createToken(jwt.MapClaims{
				"iss": "sous",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Valid token",
			authHeader: "Bearer " + createToken(jwt.MapClaims{
				"sub": "user-123",
				"iss": "sous",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusOK,
			expectedUserID: "user-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, ok := GetUserID(r.Context())
				if !ok {
					t.Error("expected userID in context")
				}
				if userID != tt.expectedUserID {
					t.Errorf("expected userID %s, got %s", tt.expectedUserID, userID)
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("POST", "/api/recipes", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if tt.expectedStatus == http.StatusUnauthorized {
				var body map[string]any
				if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
					t.Fatalf("expected JSON error body: %v", err)
				}
				if body["type"] != "UNAUTHORIZED_ERROR" {
					t.Errorf("expected UNAUTHORIZED_ERROR, got %v", body["type"])
				}
			}
		})
	}
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	cfg := &config.Config{ServiceName: "sous"}

	handler := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r.Context()); ok {
			t.Error("expected no userID without auth")
		}
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/recipes", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
