// Package config loads service configuration from an optional YAML
// file plus environment variable overrides.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full service configuration.
type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	DBPath     string     `yaml:"db_path" env:"DB_PATH" env-default:"./data/leavedesk.db"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Auth       Auth       `yaml:"auth"`
	Bootstrap  Bootstrap  `yaml:"bootstrap"`
}

// HTTPServer holds listener and timeout settings.
type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"5s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
}

// Auth holds token signing settings.
type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// Bootstrap describes the administrator account seeded into an empty
// database on first start.
type Bootstrap struct {
	AdminEmail    string `yaml:"admin_email" env:"ADMIN_EMAIL" env-default:"admin@example.com"`
	AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD" env-default:"changeme"`
}

// MustLoad reads the config file named by CONFIG_PATH (optional; env
// vars alone suffice) and exits on any error. Intended for main().
func MustLoad() *Config {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			log.Fatalf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}
	return &cfg
}
