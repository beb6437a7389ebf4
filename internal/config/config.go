// Package config handles configuration for the server: defaults,
// environment overlay, and command-line flags.
package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings for the parish-record server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabasePath: SQLite file holding users and confirmation records.
//   - SessionDBPath: BoltDB file holding the session deny-list.
//   - SigningSecret: HMAC secret for session tokens. Must be fixed per
//     deployment; rotating it invalidates all outstanding sessions. When
//     empty, the server generates an ephemeral secret at startup.
//   - SessionTTL: session token lifetime.
//   - SecureCookies: set the Secure flag on cookies (enable behind TLS).
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Addr          string
	DatabasePath  string
	SessionDBPath string
	SigningSecret string
	SessionTTL    time.Duration
	SecureCookies bool
	LogLevel      string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabasePath = "parish_records.db"
	c.SessionDBPath = "parish_sessions.db"
	c.SigningSecret = ""
	c.SessionTTL = 12 * time.Hour
	c.SecureCookies = false
	c.LogLevel = "info"
}

// applyEnv overlays values from PARISH_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PARISH_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("PARISH_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("PARISH_SESSION_DB_PATH"); v != "" {
		c.SessionDBPath = v
	}
	if v := os.Getenv("PARISH_SIGNING_SECRET"); v != "" {
		c.SigningSecret = v
	}
	if v := os.Getenv("PARISH_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SessionTTL = d
		}
	}
	if v := os.Getenv("PARISH_SECURE_COOKIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SecureCookies = b
		}
	}
	if v := os.Getenv("PARISH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// RegisterFlags binds config fields to command-line flags on fs.
// Flag defaults reflect whatever defaults and environment produced, so
// the overlay order is defaults < env < flags.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.StringVar(&c.DatabasePath, "db", c.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&c.SessionDBPath, "session-db", c.SessionDBPath, "path to the session deny-list database file")
	fs.StringVar(&c.SigningSecret, "secret", c.SigningSecret, "session signing secret (ephemeral if empty)")
	fs.DurationVar(&c.SessionTTL, "session-ttl", c.SessionTTL, "session lifetime")
	fs.BoolVar(&c.SecureCookies, "secure-cookies", c.SecureCookies, "set the Secure flag on cookies")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
}

// Load builds a Config from defaults and environment. Flags are left
// to the caller via RegisterFlags so it can add its own before parsing.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	return cfg
}
