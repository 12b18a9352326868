// Package auth issues and verifies the signed session tokens the HTTP layer
// carries in a cookie. A token binds a verified (email, role) pair.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tanvirrahman/matrimony/internal/common"
)

// Claims carries the registered claims plus the authenticated identity.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Identity is the verified (email, role) pair extracted from a session token.
type Identity struct {
	Email string
	Role  string
}

// GenerateToken signs an HS256 token for the identity, valid for
// validityDuration.
func GenerateToken(email, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
		Role:  role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// IdentityFromToken parses and verifies a token string and returns the
// identity it carries.
func IdentityFromToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Identity{Email: claims.Email, Role: claims.Role}, nil
}
