package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	secret := os.Getenv("API_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: API_JWT_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: API_JWT_SECRET=secret [SERVICE_NAME=sous] [JWT_SUBJECT=user] go run scripts/generate-jwt.go")
		os.Exit(1)
	}

	issuer := os.Getenv("SERVICE_NAME")
	if issuer == "" {
		issuer = "sous"
	}
	subject := os.Getenv("JWT_SUBJECT")
	if subject == "" {
		subject = "test-user-id"
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
		"iss": issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(tokenString)
}
