// Package auth issues and verifies the bearer tokens returned by login.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/passvault/passvault-backend/internal/common"
)

// TokenDuration is 7 days.
const TokenDuration = 7 * 24 * time.Hour

// Claims carry the authenticated user's identifier and email alongside the
// registered claims. Only UserID is consumed downstream.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Generate signs a token for the given user, valid for TokenDuration.
func (m *TokenManager) Generate(userID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	return token.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the embedded claims. Any
// failure (bad signature, expired, malformed) comes back as a single
// unauthorized error; callers never learn which check failed.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrUnauthorized
	}

	return claims, nil
}
