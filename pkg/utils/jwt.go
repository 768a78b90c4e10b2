package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAdminToken issues a short-lived token carrying the admin capability.
func GenerateAdminToken(username, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"isAdmin":  true,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString, secret string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
}
