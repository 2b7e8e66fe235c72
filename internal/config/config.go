package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config contains server configuration parameters, populated from the
// environment (a .env file is loaded first when present).
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	Env         string        `env:"ENV" envDefault:"development"`
	DatabaseDSN string        `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/flicklist?parseTime=true"`
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	JWTExpiry   time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	Hash        Hash          `envPrefix:"HASH_"`
}

// Hash contains Argon2id parameters for password hashing.
type Hash struct {
	Memory      uint32 `env:"MEMORY_KIB" envDefault:"65536"`
	Iterations  uint32 `env:"ITERATIONS" envDefault:"3"`
	Parallelism uint8  `env:"PARALLELISM" envDefault:"2"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg, nil
}
