package config

import (
	"fmt"

	"github.com/mmynk/yolksters/pkg/logging"
)

// MinJWTSecretLength is the shortest accepted signing secret.
const MinJWTSecretLength = 16

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %s)", c.Server.ShutdownTimeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters (got %d)", MinJWTSecretLength, len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %s)", c.Auth.TokenTTL)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Recipe.FetchTimeout <= 0 {
		return fmt.Errorf("recipe.fetch_timeout must be > 0 (got %s)", c.Recipe.FetchTimeout)
	}
	if c.Recipe.MaxBodyBytes <= 0 {
		return fmt.Errorf("recipe.max_body_bytes must be > 0 (got %d)", c.Recipe.MaxBodyBytes)
	}
	return nil
}
