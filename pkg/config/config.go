package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for simulation-copilot.
// Configuration can come from a YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values; secrets
// (the database password) must only come from the environment.
type Config struct {
	Env string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// MigrationsPath is the directory holding the SQL migrations.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`

	// Simulator configuration (external engine)
	Simulator SimulatorConfig `yaml:"simulator"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"simulation_copilot"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"simulation_copilot"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// SimulatorConfig holds the external simulation engine settings.
type SimulatorConfig struct {
	// Binary is the engine executable invoked for simulation runs.
	Binary string `yaml:"binary" env:"PROSIMOS_BINARY" env-default:"prosimos"`
	// TotalCases is the default number of cases per simulation run.
	TotalCases int `yaml:"total_cases" env:"PROSIMOS_TOTAL_CASES" env-default:"100"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When no config.yaml exists, the environment alone is used.
func Load() (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// URL returns a PostgreSQL connection URL.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}
