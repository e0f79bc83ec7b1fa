package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Env        string `env:"ENV" envDefault:"development"`
	Port       string `env:"PORT" envDefault:"8080"`
	LogLevel   int    `env:"LOG_LEVEL" envDefault:"0"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
	Mongo      Mongo  `envPrefix:"MONGODB_"`
	Seed       Seed   `envPrefix:"SEED_"`
}

// Mongo contains database connection parameters.
type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"beta1"`
}

// Seed contains bootstrap credentials for cmd/seed.
type Seed struct {
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
// It controls the Secure attribute on the auth cookie.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
