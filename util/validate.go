package util

import "regexp"

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername checks the username against the allowed character set.
func ValidateUsername(username string) error {
	if len(username) > 150 {
		return ValidationError("username", "username must be at most 150 characters")
	}
	if !usernameRe.MatchString(username) {
		return ValidationError("username", "username contains invalid characters")
	}
	return nil
}
