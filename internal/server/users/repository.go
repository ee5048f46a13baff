package users

import "context"

// Repository is the persistence boundary for user records. It owns the
// email-uniqueness invariant: Create must fail with
// common.ErrEmailAlreadyExists when the email is taken, even under
// concurrent signups.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
