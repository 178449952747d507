package utils

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// ParseStringToUUID returns uuid.Nil for empty or malformed input.
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// NormalizeText trims the value and collapses inner whitespace runs.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetEnvVariable reads key from the environment with a fallback.
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
