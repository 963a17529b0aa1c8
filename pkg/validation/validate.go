// Package validation holds the caller-side input rules. The data
// stores deliberately do not enforce these; the front end applies them
// before invoking an operation.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinUsernameLen = 3
	MinPasswordLen = 4
)

// Username requires at least MinUsernameLen characters.
func Username(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters", MinUsernameLen)
	}
	return nil
}

// Password requires at least MinPasswordLen characters. Length is the
// only rule: passwords are never verified by the identity store.
func Password(s string) error {
	if utf8.RuneCountInString(s) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// Content requires non-empty text after trimming.
func Content(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("content must not be empty")
	}
	return nil
}
