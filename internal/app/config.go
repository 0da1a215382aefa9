package app

import "time"

// Config holds runtime configuration for the extraction service and CLI.
type Config struct {
	// LLM
	LLMBaseURL  string
	LLMModel    string
	VisionModel string
	LLMAPIKey   string

	// Fetching
	UserAgent    string
	FetchTimeout time.Duration

	// Caching
	CacheDir string

	// Server
	ListenAddr     string
	RedisAddr      string
	RatePerMinute  int
	AllowedOrigins []string

	// Input limits enforced at the transport boundary
	MaxTextChars  int
	MaxImageBytes int

	// Behavior
	Verbose      bool
	DebugVerbose bool
}

// Defaults shared by flag parsing and config overlay.
const (
	DefaultUserAgent     = "mealdeck/1.0 (+https://github.com/mealdeck/mealdeck)"
	DefaultFetchTimeout  = 15 * time.Second
	DefaultListenAddr    = ":8080"
	DefaultRatePerMinute = 20
	DefaultMaxTextChars  = 20000
	DefaultMaxImageBytes = 5 << 20
)

// WithDefaults fills any unset field with its documented default.
func (c Config) WithDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.RatePerMinute <= 0 {
		c.RatePerMinute = DefaultRatePerMinute
	}
	if c.MaxTextChars <= 0 {
		c.MaxTextChars = DefaultMaxTextChars
	}
	if c.MaxImageBytes <= 0 {
		c.MaxImageBytes = DefaultMaxImageBytes
	}
	return c
}
