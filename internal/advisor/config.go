package advisor

// Config controls advice generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended advice settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
	}
}
