package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ikratov/taskkeeper/internal/common"
	"github.com/ikratov/taskkeeper/internal/server/auth"
)

// dummyHash is a valid bcrypt hash of an unrelated string. Login burns a
// comparison against it when the email is unknown, so the unknown-email and
// wrong-password paths cost the same and cannot be told apart by timing.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service is the signup/login gateway. It normalizes emails, hashes and
// verifies passwords, and issues tokens; both operations return the token
// only, since the client can read the subject claim itself.
type Service struct {
	repo   Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewService(repo Repository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// NormalizeEmail lowercases and trims an email so lookups and the storage
// uniqueness check are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account and returns a fresh token. A taken email is
// reported as common.ErrEmailAlreadyExists; malformed input as
// common.ErrValidation.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {

	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") || password == "" {
		return "", common.ErrValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: hashing password: %v", common.ErrorInternal, err)
	}

	user := &User{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	if _, err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrEmailAlreadyExists) {
			return "", common.ErrEmailAlreadyExists
		}
		return "", fmt.Errorf("%w: creating user: %v", common.ErrorInternal, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: issuing token: %v", common.ErrorInternal, err)
	}

	return token, nil
}

// Login verifies credentials and returns a fresh token. An unknown email
// and a wrong password both come back as common.ErrInvalidCredentials, so
// the response does not reveal which emails are registered.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {

	email = NormalizeEmail(email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, dummyHash)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: fetching user: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: issuing token: %v", common.ErrorInternal, err)
	}

	return token, nil
}
