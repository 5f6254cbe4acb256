package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment (and .env when present).
type Config struct {
	Port      string
	DB        DatabaseConfig
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string
	Bootstrap BootstrapManager
}

// DatabaseConfig selects the driver and how to reach it. Postgres uses URL;
// MySQL builds its DSN from the individual fields.
type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// BootstrapManager describes the first manager hired on an empty employee table.
type BootstrapManager struct {
	FirstName string
	LastName  string
	Phone     string
	Passcode  string
}

func (b BootstrapManager) Enabled() bool {
	return b.FirstName != "" && b.LastName != "" && b.Phone != "" && b.Passcode != ""
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: envOr("APP_PORT", "8080"),
		DB: DatabaseConfig{
			Driver:   strings.ToLower(envOr("DB_DRIVER", "postgres")),
			URL:      os.Getenv("DATABASE_URL"),
			Host:     envOr("DB_HOST", "localhost"),
			Port:     envOr("DB_PORT", "3306"),
			User:     envOr("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     envOr("DB_NAME", "used_bookstore_db"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		LogLevel:  envOr("LOG_LEVEL", "info"),
		Bootstrap: BootstrapManager{
			FirstName: os.Getenv("BOOTSTRAP_MANAGER_FIRST_NAME"),
			LastName:  os.Getenv("BOOTSTRAP_MANAGER_LAST_NAME"),
			Phone:     os.Getenv("BOOTSTRAP_MANAGER_PHONE"),
			Passcode:  os.Getenv("BOOTSTRAP_MANAGER_PASSCODE"),
		},
	}

	hours, err := intFromEnv("TOKEN_TTL_HOURS", 12)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = time.Duration(hours) * time.Hour

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres":
		if c.DB.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	case "mysql":
		if c.DB.Name == "" {
			return fmt.Errorf("DB_NAME is required when DB_DRIVER=mysql")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or mysql, got %q", c.DB.Driver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
