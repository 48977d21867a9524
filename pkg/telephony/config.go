package telephony

import (
	"log/slog"
	"time"
)

// Config holds call control API configuration.
type Config struct {
	// BaseURL is the provider API root.
	BaseURL string

	// APIKey authenticates every request.
	APIKey string

	// PhoneNumberID is the outbound caller ID, required only for
	// outbound dialing.
	PhoneNumberID string

	// Timeout for one request.
	Timeout time.Duration

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithPhoneNumberID sets the outbound caller ID.
func WithPhoneNumberID(id string) Option {
	return func(c *Config) { c.PhoneNumberID = id }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for the hosted provider.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.vapi.ai",
		Timeout: 15 * time.Second,
		Logger:  slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	return nil
}
