// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Badger store
	BadgerPath string

	// Identity
	JWTSecret string

	// Inference
	GeminiModel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 30*time.Second),

		BadgerPath: getEnv("BADGER_PATH", "./data/spendwise"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.BadgerPath == "" {
		errs = append(errs, "BADGER_PATH must not be empty")
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET must be set")
	}

	if c.GeminiModel == "" {
		errs = append(errs, "GEMINI_MODEL must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
