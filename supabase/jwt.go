package supabase

import (
	"os"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// GenerateTestJWT mints a token for exercising the API locally against a
// Supabase project whose JWT secret is known.
func GenerateTestJWT(userID string) (string, error) {
	secret := os.Getenv("SUPABASE_JWT_SECRET")

	claims := jwtv5.MapClaims{
		"sub":  userID,
		"aud":  "authenticated",
		"role": "authenticated",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
