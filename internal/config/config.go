// Package config loads server configuration from an optional YAML file and
// the environment.
package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Recipe   RecipeConfig   `yaml:"recipe"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"                 env:"PORT"                 env-default:"8080"`
	AllowedOrigins  string        `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"     env:"SHUTDOWN_TIMEOUT"     env-default:"10s"`
}

// Origins splits AllowedOrigins on commas, dropping empty entries.
func (s ServerConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"./data/shopping.db"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"24h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// RecipeConfig holds settings for fetching recipe pages.
type RecipeConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout"  env:"RECIPE_FETCH_TIMEOUT"  env-default:"15s"`
	UserAgent    string        `yaml:"user_agent"     env:"RECIPE_USER_AGENT"     env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" env:"RECIPE_MAX_BODY_BYTES" env-default:"5242880"`
}
