// Package users implements the credential store and the signup/login
// gateway: user records in Postgres and the service that turns an
// email/password pair into a signed token.
package users

import "time"

// User is the identity record. The ID is server-generated and immutable,
// the email is stored case-normalized and unique, and PasswordHash is the
// bcrypt output; the raw password is never persisted or logged.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
