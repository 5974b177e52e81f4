// Package config holds runtime settings for the watchlist server.
// Defaults are development values; environment variables override them.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is constructed once at startup and passed by reference into every
// component that needs it. It is read-only after Load returns.
//
// Fields:
//   - DatabasePath: SQLite database file path.
//   - Port: HTTP listen port.
//   - JWTSecret: HMAC secret for signing tokens (HS256). The default is
//     insecure and intended for development only.
//   - BcryptCost: bcrypt work factor for password hashing.
//   - TokenValidity: lifetime of issued tokens.
type Config struct {
	DatabasePath  string
	Port          string
	JWTSecret     string
	BcryptCost    int
	TokenValidity time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "./data/watchlist.db"
	c.Port = "3000"
	c.JWTSecret = "secret"
	c.BcryptCost = 10
	c.TokenValidity = 7 * 24 * time.Hour
}

// Load builds a Config by applying defaults and overlaying environment
// variables. Overrides are not validated; an empty or weak secret is
// accepted as-is.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			cfg.BcryptCost = cost
		}
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenValidity = d
		}
	}

	return cfg
}
