// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenDuration is how long voter tokens remain valid. Elections
// are short-lived; 30 days comfortably outlives any single ballot.
const DefaultTokenDuration = 30 * 24 * time.Hour

// TokenManager issues and validates signed voter tokens. A token binds a
// voter address to one election, so the server can establish the caller
// identity statelessly on every request.
type TokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// VoterClaims are the custom JWT claims carried by a voter token.
type VoterClaims struct {
	ElectionID string `json:"election_id"`
	Address    string `json:"address"`
	jwt.RegisteredClaims
}

// NewTokenManager creates a token manager with the given signing secret.
// secret should be a strong random string (e.g. 32 bytes).
func NewTokenManager(secret string, tokenDuration time.Duration) *TokenManager {
	if tokenDuration == 0 {
		tokenDuration = DefaultTokenDuration
	}
	return &TokenManager{
		secretKey:     []byte(secret),
		tokenDuration: tokenDuration,
	}
}

// Issue creates a signed voter token for the given election and address.
func (m *TokenManager) Issue(electionID, address string) (string, error) {
	claims := &VoterClaims{
		ElectionID: electionID,
		Address:    address,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign voter token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a voter token, returning its claims.
func (m *TokenManager) Validate(tokenString string) (*VoterClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&VoterClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*VoterClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
