// Package auth holds the two security primitives of the server: stateless
// JWT issuance/verification and bcrypt password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ikratov/taskkeeper/internal/common"
)

// TokenService issues and verifies signed, time-bound identity tokens.
// The signing secret and token lifetime are fixed at construction and
// never mutated, so a single instance is safe for concurrent use.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

func NewTokenService(secret []byte, validity time.Duration) *TokenService {
	return &TokenService{secret: secret, validity: validity}
}

// Issue mints an HS256 token whose subject is the given user ID, valid
// from now until now+validity. Nothing but the user ID is embedded.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
	})

	return token.SignedString(s.secret)
}

// Verify validates the token signature first, then its claims, and returns
// the subject user ID. Outcomes for bad input are classified, never thrown:
// a well-formed token past its expiry yields common.ErrTokenExpired, and
// anything else (malformed structure, tampered payload or signature, wrong
// algorithm, missing subject) yields common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
