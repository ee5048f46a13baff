package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ikratov/taskkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates a new account.
// On success the returned token is kept for subsequent requests, so a
// fresh signup is immediately logged in. The password byte slice is wiped
// before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Signup(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyExists) {
			fmt.Println("That email is already taken.")
			return nil
		}
		return err
	}

	a.api.SetToken(token)
	a.email = email
	fmt.Println("Account created!")
	return nil
}

// Login prompts for credentials and authenticates against the server.
// The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Println("Invalid email or password.")
			return nil
		}
		return err
	}

	a.api.SetToken(token)
	a.email = email
	fmt.Println("Logged in!")
	return nil
}

// Logout discards the token client-side; the server keeps no session state.
func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.email = ""
	fmt.Println("Logged out.")
	return nil
}
