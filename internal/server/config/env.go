package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file
// in the working directory is loaded first if present (missing files are
// not an error), matching the deployment convention of keeping secrets
// out of the command line.
//
// Recognized variables:
//
//	ADDRESS          HTTP bind address (e.g., ":5001")
//	DATABASE_DSN     PostgreSQL DSN
//	JWT_SECRET       token signing secret
//	TOKEN_VALIDITY   token lifetime, time.ParseDuration format (e.g., "1h")
//	BCRYPT_COST      bcrypt work factor
//
// Malformed duration or integer values are ignored in favor of the
// previously applied layer.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
}
