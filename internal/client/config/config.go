// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/ikratov/taskkeeper/internal/flagx"
)

// Config holds runtime settings for the TaskKeeper CLI.
type Config struct {
	// ServerURL is the base URL of the TaskKeeper API, e.g. "http://localhost:8080".
	ServerURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// SERVER_URL environment variable and the -s command-line flag.
// Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("SERVER_URL"); ok {
		config.ServerURL = v
	}
}

func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.StringVar(&config.ServerURL, "s", config.ServerURL, "server base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
