// Package config loads server and CLI settings from the environment.
//
// Every key can be set through a SHEPHERD_-prefixed variable, e.g.
// SHEPHERD_DB_PATH or SHEPHERD_REQUIRE_AUTH. Outside production a .env
// file in the working directory is read first.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SHEPHERD"

	// DefaultJWTSecret is only acceptable outside production.
	DefaultJWTSecret = "dev-secret-change-me"
)

// Config holds all configuration for the application.
type Config struct {
	Port        int           `mapstructure:"port"`
	DBPath      string        `mapstructure:"db_path"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	LogLevel    string        `mapstructure:"log_level"`
	LogFormat   string        `mapstructure:"log_format"`
	Env         string        `mapstructure:"env"`
	RequireAuth bool          `mapstructure:"require_auth"`

	// AllowRegistration keeps Register public. When false only a signed-in
	// leader can create another account.
	AllowRegistration bool `mapstructure:"allow_registration"`
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "./data/shepherd.db")
	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("env", "development")
	v.SetDefault("require_auth", true)
	v.SetDefault("allow_registration", true)
}

// NewViper returns a viper instance bound to the SHEPHERD_ environment
// with defaults applied. Commands may bind their flags onto it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads .env (outside production) and then the environment.
func Load() (*Config, error) {
	LoadDotEnv()
	return LoadWithViper(NewViper())
}

// LoadDotEnv loads .env into the process environment unless SHEPHERD_ENV
// is production. A missing file is not an error.
func LoadDotEnv() {
	if os.Getenv(EnvPrefix+"_ENV") == "production" {
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}
}

// LoadWithViper decodes and validates configuration from v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid token_ttl %s", c.TokenTTL)
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("jwt_secret must be set in production")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	return nil
}
