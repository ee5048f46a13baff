package main

import (
	"context"

	"github.com/ikratov/taskkeeper/internal/client/cli"
	"github.com/ikratov/taskkeeper/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(cfg)
	app.Run(ctx)
}
