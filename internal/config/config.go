package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"qanalyse/internal/logger"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the process configuration shared by the CLI and the server.
type Config struct {
	LogLevel     string
	LogPretty    bool
	Architecture string // default architecture name, empty for unrouted analysis
	Qubits       int    // qubit count for scalable architectures
	CanonConfig  string // path to a canonicalizer YAML file
	Addr         string // listen address of the analysis service
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("QANALYSE_LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("QANALYSE_LOG_PRETTY", true),
		Architecture: getEnv("QANALYSE_ARCHITECTURE", ""),
		Qubits:       getEnvAsInt("QANALYSE_QUBITS", 0),
		CanonConfig:  getEnv("QANALYSE_CANON_CONFIG", ""),
		Addr:         getEnv("QANALYSE_ADDR", ":8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values no command can use.
func (c *Config) Validate() error {
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Qubits < 0 {
		return fmt.Errorf("%w: negative qubit count %d", ErrInvalidConfig, c.Qubits)
	}
	return nil
}

// Logger returns the logger configuration.
func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Pretty: c.LogPretty}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
