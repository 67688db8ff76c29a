package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	// Read JWT settings from environment
	secret := os.Getenv("JWT_SECRET")
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "fitchef-ember"
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: JWT_SECRET=secret go run scripts/generate-jwt.go")
		os.Exit(1)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "test-user-id",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
		"iss": issuer,
	}

	// Create token with HS256
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign the token
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	// Print the token
	fmt.Println(tokenString)
}
