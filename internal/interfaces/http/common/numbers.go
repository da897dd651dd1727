package common

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses value, returning fallback when it is blank.
// A non-blank value that is not an integer reports ok=false.
func ParseIntDefault(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// ParseFormBool accepts the checkbox spellings browsers and scripts send.
func ParseFormBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// DefaultString returns fallback when value is blank.
func DefaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
