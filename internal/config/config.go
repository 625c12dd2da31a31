// Package config holds the runtime configuration of the web frontend.
// Values are bound by kong from flags or environment variables (a .env file
// is loaded first by main via godotenv).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
	_ "time/tzdata"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

// Config is shared by every command.
type Config struct {
	Port       string `help:"HTTP listen port" env:"PORT" default:"5175"`
	BackendURL string `help:"Base URL of the catalog API" env:"BACKEND_URL" default:"http://localhost:3001"`

	LogLevel  string `help:"Log level (trace, debug, info, warn, error)" env:"LOG_LEVEL" default:"info"`
	LogFormat string `help:"Log output format" env:"LOG_FORMAT" enum:"json,console" default:"json"`

	ClientOrigins []string `help:"Allowed CORS origins" env:"CLIENT_ORIGIN" default:"http://localhost:5173"`

	BackendTimeout time.Duration `help:"Timeout for a single catalog API request" env:"BACKEND_TIMEOUT" default:"10s"`
	HandlerTimeout time.Duration `help:"Upper bound for rendering one page" env:"HANDLER_TIMEOUT" default:"15s"`
	BackendRPS     int           `help:"Outbound requests per second to the catalog API (0 disables)" env:"BACKEND_RPS" default:"20"`

	CacheBackend string        `help:"Response cache backend" env:"CACHE_BACKEND" enum:"none,memory,redis,sqlite" default:"memory"`
	CacheTTL     time.Duration `help:"Lifetime of cached catalog responses" env:"CACHE_TTL" default:"5m"`
	RedisURL     string        `help:"Redis URL for the redis cache backend" env:"REDIS_URL" default:"redis://localhost:6379/0"`
	SQLitePath   string        `help:"Database file for the sqlite cache backend" env:"CACHE_SQLITE_PATH" default:"./data/cache.db"`

	PagesDir string `help:"Directory with page shells overriding the embedded ones" env:"PAGES_DIR" type:"path"`
	TimeZone string `help:"Time zone used to display release dates" env:"TIMEZONE" default:"America/Sao_Paulo"`
}

// Validate checks values kong cannot check on its own.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend url %q: scheme must be http or https", c.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend url %q: missing host", c.BackendURL)
	}
	if c.BackendRPS < 0 {
		return errors.New("backend rps must not be negative")
	}
	if c.BackendTimeout <= 0 {
		return errors.New("backend timeout must be positive")
	}
	if c.CacheTTL < 0 {
		return errors.New("cache ttl must not be negative")
	}
	if c.CacheBackend == CacheRedis && c.RedisURL == "" {
		return errors.New("redis cache backend requires REDIS_URL")
	}
	if c.CacheBackend == CacheSQLite && c.SQLitePath == "" {
		return errors.New("sqlite cache backend requires CACHE_SQLITE_PATH")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone. An empty value means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string { return ":" + c.Port }
