package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT    JWTConfig
	Sqlite SqliteConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISSUER,   default=accounts-api"`
	Audience string        `env:"JWT_AUDIENCE, default=accounts-api"`
	TTL      time.Duration `env:"JWT_TTL,      default=8h"`
}

type SqliteConfig struct {
	DSN string `env:"SQLITE_DSN, default=file:accounts.db?_pragma=busy_timeout(5000)"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
