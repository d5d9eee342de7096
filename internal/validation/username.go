package validation

import (
	"strings"
)

// ValidateUsername validates a signup username.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return Error("username is required")
	}

	if len(trimmed) > 100 {
		return Error("username is too long (max 100 characters)")
	}

	for _, r := range trimmed {
		if r == ' ' || r == '/' || r == '?' || r == '#' {
			return Error("username must not contain spaces or URL characters")
		}
	}

	return nil
}
