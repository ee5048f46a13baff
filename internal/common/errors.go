// Package common defines shared sentinel errors and small helpers used
// across client and server layers of TaskKeeper. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Signup/login outcomes. ErrInvalidCredentials deliberately covers both
	// an unknown email and a wrong password so callers cannot distinguish them.
	ErrEmailAlreadyExists = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Input validation.
	ErrValidation = errors.New("validation error")

	// Token lifecycle errors. A malformed or tampered token is ErrInvalidToken;
	// a well-formed token past its expiry is ErrTokenExpired.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
