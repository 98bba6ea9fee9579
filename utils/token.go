package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionSecret signs bearer tokens. Overridden from SESSION_JWT_SECRET in main.
var SessionSecret = []byte("smave-dev-secret")

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken mints the bearer token for a login session. The token carries
// no expiry; validity is bounded by the session row, which logout deletes.
func GenerateToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
	})
	return token.SignedString(SessionSecret)
}

// ParseToken verifies the signature and returns the embedded user id.
func ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return SessionSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
