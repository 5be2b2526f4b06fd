package matching

import (
	"os"
	"strconv"
)

// DefaultLimit is how many universities a run returns when the caller does
// not ask for a specific number.
const DefaultLimit = 5

// Config holds recommendation defaults.
type Config struct {
	Limit int
}

// DefaultConfig returns Config{Limit: DefaultLimit}.
func DefaultConfig() Config {
	return Config{Limit: DefaultLimit}
}

// ConfigFromEnv applies GIASU_RECOMMEND_LIMIT on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("GIASU_RECOMMEND_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Limit = n
		}
	}
	return cfg
}
