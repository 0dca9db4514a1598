// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a companion session token stays valid. Long-lived
// on purpose: the app runs on a shared-care tablet and the resident should
// not be asked for the PIN every day.
const SessionTTL = 30 * 24 * time.Hour

// GenerateSessionToken mints a signed token for a new session.
func GenerateSessionToken(sessionID string, secretKey []byte) (string, error) {
	if sessionID == "" {
		return "", errors.New("session ID cannot be empty")
	}

	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(SessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateSessionToken checks the signature and expiry and returns the
// session ID.
func ValidateSessionToken(tokenString string, secretKey []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sessionID, ok := claims["sub"].(string); ok && sessionID != "" {
			return sessionID, nil
		}
	}
	return "", errors.New("invalid token")
}
