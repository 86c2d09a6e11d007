package coach

import "time"

// Config holds coach note generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// TTL is how long a cached note stays valid. Zero keeps notes forever.
	TTL time.Duration
}

// DefaultConfig returns sensible defaults for coach notes.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.4,
		TTL:         24 * time.Hour,
	}
}
