// Package config provides shared configuration utilities.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvDuration parses the variable named by key as a time.Duration
// ("90s", "2m"). Unset or empty returns fallback.
func GetEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := GetEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return fallback, fmt.Errorf("parse %s: negative duration %s", key, value)
	}
	return d, nil
}

// GetEnvLevel parses the variable named by key as a log level
// (debug, info, warn, error, fatal). Unset or empty returns fallback.
func GetEnvLevel(key string, fallback log.Level) (log.Level, error) {
	value := GetEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	level, err := log.ParseLevel(value)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", key, err)
	}
	return level, nil
}
