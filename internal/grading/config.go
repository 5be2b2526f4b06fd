package grading

import (
	"os"
	"strconv"
)

// Config controls batch grading.
type Config struct {
	// Workers bounds how many submissions GradeBatch grades at once.
	Workers int
}

// DefaultConfig returns the recommended batch settings.
func DefaultConfig() Config {
	return Config{Workers: 4}
}

// ConfigFromEnv overrides defaults with GIASU_GRADE_WORKERS when it holds a
// positive integer.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("GIASU_GRADE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	return cfg
}
