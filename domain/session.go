package domain

import "strings"

// UsernameMinLen is the shortest accepted display name after trimming.
const UsernameMinLen = 2

// Session represents the logged-in identity. There is at most one session
// per process; it lives from login until logout.
type Session struct {
	Username string `json:"username"`
}

// ValidateUsername trims the display name and enforces the minimum length.
func ValidateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", NewValidationError("username", "username is required")
	}
	if len([]rune(trimmed)) < UsernameMinLen {
		return "", NewValidationError("username", "username must be at least 2 characters")
	}
	return trimmed, nil
}
