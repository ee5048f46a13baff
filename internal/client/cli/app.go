// Package cli implements the interactive TaskKeeper client: a small REPL
// for registering, logging in, and managing the task list.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/ikratov/taskkeeper/internal/client/api"
	"github.com/ikratov/taskkeeper/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
	email  string
	reader *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	a.Main(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

// showLogin returns the prompt fragment describing the current identity.
func (a *App) showLogin() string {
	if !a.isLoggedIn() {
		return "not logged in"
	}
	return a.email
}
