// Package server initializes and runs the TaskKeeper server: it opens the
// database, applies migrations, constructs the services, and serves the
// HTTP API until the process is signalled to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikratov/taskkeeper/internal/logging"
	"github.com/ikratov/taskkeeper/internal/server/auth"
	"github.com/ikratov/taskkeeper/internal/server/config"
	"github.com/ikratov/taskkeeper/internal/server/db"
	httpserver "github.com/ikratov/taskkeeper/internal/server/http"
	"github.com/ikratov/taskkeeper/internal/server/tasks"
	"github.com/ikratov/taskkeeper/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  db.RepositoryManager
	server *httpserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger()

	repos, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenValidity)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	us := users.NewService(repos.Users(), hasher, tokens)
	ts := tasks.NewService(repos.Tasks())

	srv := httpserver.NewServer(cfg.Address, logger, us, ts, tokens)

	return &App{config: cfg, logger: logger, repos: repos, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
