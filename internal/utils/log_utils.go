package utils

import (
	"strings"
	"unicode"
)

// MaxLogStringLength caps user-provided strings (room names, join codes)
// before they reach the logs
const MaxLogStringLength = 120

// SanitizeLogString makes a user-controlled string safe for logging: it
// truncates long input, flattens control characters, and escapes format
// specifiers.
func SanitizeLogString(input string) string {
	if input == "" {
		return ""
	}

	if len(input) > MaxLogStringLength {
		input = input[:MaxLogStringLength] + "... (truncated)"
	}

	sanitized := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, input)

	return strings.ReplaceAll(sanitized, "%", "%%")
}
