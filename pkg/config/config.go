// Package config provides configuration management for the payment
// instruction service. It loads configuration from environment variables and
// .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server ServerConfig
	Ledger LedgerConfig
	Debug  bool
	AppEnv string
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MetricsEnabled bool
}

// LedgerConfig represents account book configuration.
type LedgerConfig struct {
	DataDir string
	DBPath  string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	readTimeout, err := parseDurationEnv("PAYMENT_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("PAYMENT_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	metrics, err := parseBoolEnv("PAYMENT_METRICS", true)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PAYMENT_PORT", "8080"),
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			MetricsEnabled: metrics,
		},
		Ledger: LedgerConfig{
			DataDir: getEnvOrDefault("PAYMENT_DATA_DIR", "./data"),
			DBPath:  os.Getenv("PAYMENT_DB_PATH"),
		},
		Debug:  os.Getenv("DEBUG") == "true",
		AppEnv: getEnvOrDefault("APP_ENV", "development"),
	}

	return config, nil
}

// Validate validates the configuration.
// Each argument is a path such as []string{"server", "port"}.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "server":
			switch path[1] {
			case "port":
				value = c.Server.Port
			}
		case "ledger":
			switch path[1] {
			case "dataDir":
				value = c.Ledger.DataDir
			case "dbPath":
				value = c.Ledger.DBPath
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDurationEnv parses a time.Duration such as "15s" from an environment variable.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value for %s: %s", key, value)
	}

	return parsed, nil
}

// parseBoolEnv parses a boolean from an environment variable.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}
