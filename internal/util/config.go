package util

import (
	"os"
	"strconv"
)

// Config holds runtime settings and flags.
type Config struct {
	SeedText       string
	DSN            string // empty disables the run archive
	Theme          string
	TypingInterval int // scheduler ticks per revealed character
	Telemetry      bool
	Version        string
}

// EnvOr reads an environment variable with a fallback.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvIntOr reads an integer environment variable with a fallback.
// Malformed values fall back silently.
func EnvIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
