package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/yigit/unitrack/internal/pkg/grading"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		// TxTimeout bounds a unit of work whose caller set no deadline
		TxTimeout string `yaml:"tx_timeout" env:"DB_TX_TIMEOUT"`
		// LockTimeout bounds the wait for a row lock inside a unit of work
		LockTimeout   string `yaml:"lock_timeout" env:"DB_LOCK_TIMEOUT"`
		MigrationsDir string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		AdminUsername     string `yaml:"admin_username" env:"ADMIN_USERNAME"`
		AdminPasswordHash string `yaml:"admin_password_hash" env:"ADMIN_PASSWORD_HASH"`
	} `yaml:"auth"`

	Grading struct {
		FailingLetter string             `yaml:"failing_letter" env:"GRADING_FAILING_LETTER"`
		Boundaries    []grading.Boundary `yaml:"boundaries"`
		// PolicyFile, when set, replaces FailingLetter and Boundaries
		PolicyFile string `yaml:"policy_file" env:"GRADING_POLICY_FILE"`
	} `yaml:"grading"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, a .env file and environment
// variables, in increasing order of precedence
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if file, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// variables already present in the environment win over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "unitrack"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.TxTimeout = "30s"
	config.Database.LockTimeout = "5s"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "unitrack.app"

	config.Auth.AdminUsername = "admin"

	config.Grading.FailingLetter = grading.DefaultFailingLetter
	config.Grading.Boundaries = grading.DefaultBoundaries()

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"JWT access token expiration":  config.JWT.AccessTokenExpiration,
		"database connection lifetime": config.Database.ConnMaxLifetime,
		"database transaction timeout": config.Database.TxTimeout,
		"database lock timeout":        config.Database.LockTimeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Grading.PolicyFile == "" {
		if _, err := grading.NewPolicy(config.Grading.Boundaries, config.Grading.FailingLetter); err != nil {
			return fmt.Errorf("invalid grading policy: %w", err)
		}
	}

	return nil
}

// GradingPolicy builds the letter-grade policy from the external policy
// file when one is configured, otherwise from the inline table
func (c *Config) GradingPolicy() (*grading.Policy, error) {
	if c.Grading.PolicyFile != "" {
		return grading.LoadPolicyFile(c.Grading.PolicyFile)
	}
	return grading.NewPolicy(c.Grading.Boundaries, c.Grading.FailingLetter)
}

// AccessTokenTTL returns the parsed JWT lifetime
func (c *Config) AccessTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWT.AccessTokenExpiration)
	if err != nil {
		return time.Hour
	}
	return d
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
