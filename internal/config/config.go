// Package config provides configuration helpers for translator commands.
// Values come from environment variables, optionally loaded from a .env
// file by the command entrypoints.
package config

import (
	"fmt"
	"os"
	"time"
)

// Defaults for the translator service.
const (
	DefaultPort          = "3000"
	DefaultOracleBaseURL = "https://api.openai.com/v1"
	DefaultOracleModel   = "gpt-4o-mini"
	DefaultSweepInterval = 15 * time.Minute
	DefaultMaxIdle       = 30 * time.Minute
)

// Port returns the HTTP listen port from PORT, or the default.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// OracleAPIKey returns the LLM API key from OPENAI_API_KEY.
// Exits with a usage message if not set.
func OracleAPIKey() string {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: OPENAI_API_KEY environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: OPENAI_API_KEY=sk-... VAPI_API_KEY=... go run ./cmd/translator")
		os.Exit(1)
	}
	return key
}

// OracleBaseURL returns the LLM API base URL from OPENAI_BASE_URL or default.
func OracleBaseURL() string {
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" {
		return url
	}
	return DefaultOracleBaseURL
}

// OracleModel returns the chat model from OPENAI_MODEL or default.
func OracleModel() string {
	if m := os.Getenv("OPENAI_MODEL"); m != "" {
		return m
	}
	return DefaultOracleModel
}

// TelephonyAPIKey returns the telephony provider API key from VAPI_API_KEY.
// Exits with a usage message if not set.
func TelephonyAPIKey() string {
	key := os.Getenv("VAPI_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: VAPI_API_KEY environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: OPENAI_API_KEY=sk-... VAPI_API_KEY=... go run ./cmd/translator")
		os.Exit(1)
	}
	return key
}

// TelephonyBaseURL returns the telephony API base URL from VAPI_BASE_URL.
// Empty means the client default.
func TelephonyBaseURL() string {
	return os.Getenv("VAPI_BASE_URL")
}

// PhoneNumberID returns the outbound caller ID from PHONE_NUMBER_ID.
// Optional: only needed for outbound conference calls.
func PhoneNumberID() string {
	return os.Getenv("PHONE_NUMBER_ID")
}

// SweepInterval returns how often idle sessions are swept, from
// SWEEP_INTERVAL (Go duration syntax) or the default.
func SweepInterval() time.Duration {
	return duration("SWEEP_INTERVAL", DefaultSweepInterval)
}

// MaxIdle returns the session inactivity threshold, from MAX_IDLE
// (Go duration syntax) or the default.
func MaxIdle() time.Duration {
	return duration("MAX_IDLE", DefaultMaxIdle)
}

func duration(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid %s %q: %v\n", name, v, err)
		os.Exit(1)
	}
	return d
}
