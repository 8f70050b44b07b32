// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	DatabaseDriver  string        `env:"DATABASE_DRIVER" envDefault:"postgres"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"evoting.db"`
	JWTSecret       string        `env:"JWT_SECRET"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	OTelEndpoint    string        `env:"OTEL_ENDPOINT"`
	OTelEnabled     bool          `env:"OTEL_ENABLED" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	Postgres        Postgres
}

type Postgres struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	DB       string `env:"POSTGRES_DB"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}

// RequireJWTSecret fails when no token signing secret is configured.
func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// PostgresURL builds the connection string for lib/pq.
func (c Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.User, c.Postgres.Password),
		Host:     net.JoinHostPort(c.Postgres.Host, c.Postgres.Port),
		Path:     "/" + c.Postgres.DB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
