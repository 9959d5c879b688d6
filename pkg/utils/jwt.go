package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateRefreshToken creates a long-lived token that can only be traded
// for a new access token.
func GenerateRefreshToken(userID uint, secret string, days int) (string, error) {
	if secret == "" {
		return "", errors.New("refresh secret is empty")
	}
	claims := jwt.MapClaims{
		"user_id": userID,
		"typ":     "refresh",
		"jti":     uuid.NewString(),
		"exp":     time.Now().AddDate(0, 0, days).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyRefreshToken parses and validates a refresh token and returns the
// user it was issued to.
func VerifyRefreshToken(tokenStr, secret string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		return 0, errors.New("invalid claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, errors.New("invalid claims")
	}
	return uint(id), nil
}
