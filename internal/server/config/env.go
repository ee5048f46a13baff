package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. An optional
// .env file in the working directory is loaded first; real environment
// variables win over the file.
//
// Recognized variables:
//
//	ADDRESS         bind address, e.g. ":8080"
//	DATABASE_DSN    PostgreSQL DSN
//	SECRET_KEY      JWT HMAC secret
//	TOKEN_VALIDITY  token lifetime as a Go duration, e.g. "24h"
//	BCRYPT_COST     bcrypt work factor, integer
//
// Malformed values panic: a half-applied configuration is worse than a
// failed start.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.Address = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Sprintf("invalid TOKEN_VALIDITY %q: %v", v, err))
		}
		config.TokenValidity = d
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Sprintf("invalid BCRYPT_COST %q: %v", v, err))
		}
		config.BcryptCost = n
	}
}
