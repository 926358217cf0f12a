// Package auth implements password hashing and signed-token issuance and
// verification for sessions and password-reset links.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sitenexus/sitenexus/internal/common"
)

// Token purposes. The original system issued one undifferentiated token for
// both logins and reset links; carrying the purpose in the claims lets the
// verifier reject a reset token presented as a session and vice versa.
const (
	PurposeSession = "session"
	PurposeReset   = "reset"
)

// Claims carries the registered claims plus the user id and token purpose.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"uid"`
	Purpose string `json:"purpose"`
}

// GenerateToken issues an HS256-signed token for the given user and purpose.
func GenerateToken(userID string, purpose string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:  userID,
		Purpose: purpose,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the signature, expiry and purpose of a token
// and returns the user id it was issued for.
func GetUserIDFromToken(tokenString string, purpose string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Purpose != purpose {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
