package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	ErrMissingURL     = errors.New("supabase url is not set")
	ErrMissingAnonKey = errors.New("supabase anon key is not set")
	ErrInvalidValue   = errors.New("invalid configuration value")
)

// Config holds runtime settings for the ZivoHub CLI.
//
// ResendCooldown is a number of one-second ticks; the other intervals are
// plain durations.
type Config struct {
	SupabaseURL string
	AnonKey     string
	DatabaseURL string

	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	ResendCooldown      int

	Language string
	LogLevel string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.ResendCooldown = 60
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// Validate reports the first missing or out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.SupabaseURL == "":
		return ErrMissingURL
	case c.AnonKey == "":
		return ErrMissingAnonKey
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout %s", ErrInvalidValue, c.RequestTimeout)
	case c.OnlineCheckInterval <= 0:
		return fmt.Errorf("%w: online check interval %s", ErrInvalidValue, c.OnlineCheckInterval)
	case c.ResendCooldown <= 0:
		return fmt.Errorf("%w: resend cooldown %d", ErrInvalidValue, c.ResendCooldown)
	}
	return nil
}

// AttachmentsEnabled reports whether homework uploads are configured.
func (c *Config) AttachmentsEnabled() bool {
	return c.S3Bucket != ""
}

// Load builds a Config from defaults, the environment, the JSON file named
// in args, and the flags in args, in that order.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads .env (if present) and builds the Config from the process
// environment and os.Args. It panics on malformed input.
func LoadConfig() *Config {
	loadDotEnv()
	cfg, err := Load(os.Args[1:], os.Getenv)
	if err != nil {
		panic(err)
	}
	return cfg
}
