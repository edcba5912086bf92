// Package jwtutil decodes the inbound bearer token and mints the
// short-lived provider tokens the external chat client needs,
// following the teacher's internal/pkg/jwt package but pared down to
// the HS256-only, claims-only shape this service requires.
package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the inbound session token's camelCase claim names.
type Claims struct {
	UserID     string `json:"userId"`
	TypeID     string `json:"typeId,omitempty"`
	SessionID  string `json:"sessionId,omitempty"`
	BusinessID string `json:"businessId,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token has invalid signature")
	ErrNotAuthorized    = errors.New("not authorized")
)

// Decode validates and parses an HS256 bearer token, mapping
// jsonwebtoken-style errors onto the three outcomes the auth guard
// distinguishes.
func Decode(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrNotAuthorized
		}
		return []byte(secret), nil
	})

	if err == nil {
		return claims, nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	default:
		return nil, ErrNotAuthorized
	}
}

// ProviderClaims is the short-lived claim set minted for calls to the
// external chat provider.
type ProviderClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// MintProviderToken generates an HS256 token scoped to userID that
// expires ttl after issue, matching generate_getstream_jwt in the original
// implementation (no caching — minted fresh on every call).
func MintProviderToken(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ProviderClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
